package viewlog

import (
	"context"
	"errors"
	"iter"
)

var (
	ErrEntityExists  = errors.New("entity already exists")
	ErrTableNotFound = errors.New("table not found")
)

// Row is one stored entity. Value is the encoded payload.
type Row struct {
	PartitionKey string
	RowKey       string
	Value        []byte
}

// InsertResult carries what the table reports about a write. RequestCharge
// is nil when the table does not meter writes.
type InsertResult struct {
	RequestCharge *float64
}

// Table is a partitioned key-value table. Rows of a partition enumerate in
// ascending row key order and are never overwritten.
type Table interface {
	Name() string
	CreateIfNotExists(ctx context.Context) (bool, error)
	Insert(ctx context.Context, partitionKey, rowKey string, value []byte) (InsertResult, error)
	Query(ctx context.Context, partitionKey string) iter.Seq2[Row, error]
	Close() error
}
