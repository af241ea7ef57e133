package viewlog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

var errStopScan = errors.New("scan stopped")

// BadgerTable stores rows under t/<table>/<partition>/<row>. Badger iterates
// keys in byte order, which gives the ascending row key enumeration the
// Table contract asks for. The table exists once its m/<table> marker does.
type BadgerTable struct {
	db   *badger.DB
	name string
}

func OpenBadgerTable(conn *TableConnection, name string) (*BadgerTable, error) {
	var opts badger.Options
	if conn.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(conn.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create view log directory: %w", err)
		}
		opts = badger.DefaultOptions(conn.Dir)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open view log database: %w", err)
	}
	return &BadgerTable{db: db, name: name}, nil
}

func (t *BadgerTable) Name() string {
	return t.name
}

func (t *BadgerTable) markerKey() []byte {
	return []byte("m/" + t.name)
}

func (t *BadgerTable) partitionPrefix(partitionKey string) []byte {
	return []byte("t/" + t.name + "/" + partitionKey + "/")
}

func (t *BadgerTable) CreateIfNotExists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	created := false
	err := t.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(t.markerKey())
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		created = true
		return txn.Set(t.markerKey(), []byte(t.name))
	})
	if errors.Is(err, badger.ErrConflict) {
		// another caller created it between our read and commit
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return created, nil
}

// Insert adds a row and fails with ErrEntityExists if the key is taken.
func (t *BadgerTable) Insert(ctx context.Context, partitionKey, rowKey string, value []byte) (InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return InsertResult{}, err
	}
	key := append(t.partitionPrefix(partitionKey), rowKey...)
	err := t.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(t.markerKey()); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrTableNotFound, t.name)
			}
			return err
		}
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %s/%s", ErrEntityExists, partitionKey, rowKey)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, value)
	})
	if errors.Is(err, badger.ErrConflict) {
		return InsertResult{}, fmt.Errorf("%w: %s/%s", ErrEntityExists, partitionKey, rowKey)
	}
	return InsertResult{}, err
}

// Query scans one partition lazily inside a read transaction that stays
// open until the consumer stops ranging.
func (t *BadgerTable) Query(ctx context.Context, partitionKey string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		prefix := t.partitionPrefix(partitionKey)
		stopped := false
		err := t.db.View(func(txn *badger.Txn) error {
			if _, err := txn.Get(t.markerKey()); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: %s", ErrTableNotFound, t.name)
				}
				return err
			}

			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				item := it.Item()
				value, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				row := Row{
					PartitionKey: partitionKey,
					RowKey:       strings.TrimPrefix(string(item.Key()), string(prefix)),
					Value:        value,
				}
				if !yield(row, nil) {
					stopped = true
					return errStopScan
				}
			}
			return nil
		})
		if err != nil && !stopped {
			yield(Row{}, err)
		}
	}
}

func (t *BadgerTable) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}
