package viewlog

import (
	"context"
	"errors"
	"fmt"
	"imgstore/internal/models"
	"imgstore/internal/providers"
	"imgstore/internal/structures"
	"iter"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type ViewLogInterface interface {
	Initialize(ctx context.Context) error
	AppendView(ctx context.Context, username string, imageID int, caption, uri string) error
	// QueryToday orders newest first per image id, not across ids.
	QueryToday(ctx context.Context) iter.Seq2[*models.ViewLogEntry, error]
	QueryDay(ctx context.Context, day string) iter.Seq2[*models.ViewLogEntry, error]
	RecentDays() []string
	Enabled() bool
	Close() error
}

// ViewLog appends view entries to a day-partitioned table. Row keys put the
// newest view of an image first within its partition.
type ViewLog struct {
	table   Table
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
	newID   func() string
}

// NewViewLog returns an inert log when the connection is empty or still
// the shipped placeholder.
func NewViewLog(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (ViewLogInterface, error) {
	if IsDisabled(conf.ViewLog.Connection) {
		logger.Warnf(providers.TypeViews, "View log connection not configured, view logging disabled")
		return &noopViewLog{}, nil
	}
	conn, err := ParseTableConnection(conf.ViewLog.Connection)
	if err != nil {
		return nil, err
	}
	table, err := OpenBadgerTable(conn, TableName)
	if err != nil {
		return nil, structures.Unavailable("open view log", err)
	}
	return NewViewLogWithTable(table, logger, metrics), nil
}

func NewViewLogWithTable(table Table, logger providers.Logger, metrics providers.MetricsProviderInterface) *ViewLog {
	return &ViewLog{
		table:   table,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

func (v *ViewLog) Initialize(ctx context.Context) error {
	created, err := v.table.CreateIfNotExists(ctx)
	if err != nil {
		return tableError("create table", err)
	}
	if created {
		v.logger.Infof(providers.TypeViews, "Created table %s", v.table.Name())
	} else {
		v.logger.Infof(providers.TypeViews, "Table %s already exists", v.table.Name())
	}
	return nil
}

func (v *ViewLog) AppendView(ctx context.Context, username string, imageID int, caption, uri string) error {
	now := v.now().UTC()
	entry := models.ViewLogEntry{
		PartitionKey:   PartitionKey(now),
		RowKey:         RowKey(imageID, now, v.newID()),
		EntryTimestamp: now,
		ImageID:        imageID,
		Username:       username,
		Caption:        caption,
		AssetURI:       uri,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		v.metrics.IncViewsAppended(providers.ResultError)
		return fmt.Errorf("encode view entry: %w", err)
	}

	v.logger.Debugf(providers.TypeViews, "Adding log entry for image: %d", imageID)
	res, err := v.table.Insert(ctx, entry.PartitionKey, entry.RowKey, payload)
	if err != nil {
		v.logger.Errorf(providers.TypeViews, "Adding log entry for image %d failed: %s", imageID, err)
		v.metrics.IncViewsAppended(providers.ResultUnavailable)
		return tableError("insert entry", err)
	}
	if res.RequestCharge != nil {
		v.logger.Infof(providers.TypeViews, "Added log entry with charge %v", *res.RequestCharge)
	}
	v.metrics.IncViewsAppended(providers.ResultOK)
	return nil
}

// QueryToday enumerates the current UTC day's partition. Entries are newest
// first only within one image id; across ids rows are grouped by the id as a string.
func (v *ViewLog) QueryToday(ctx context.Context) iter.Seq2[*models.ViewLogEntry, error] {
	return v.query(ctx, PartitionKey(v.now()))
}

func (v *ViewLog) QueryDay(ctx context.Context, day string) iter.Seq2[*models.ViewLogEntry, error] {
	if _, err := ParseDay(day); err != nil {
		return single(err)
	}
	return v.query(ctx, day)
}

// query reads rows as the caller ranges. The sequence may be ranged once;
// later attempts yield ErrSequenceConsumed.
func (v *ViewLog) query(ctx context.Context, partitionKey string) iter.Seq2[*models.ViewLogEntry, error] {
	var consumed atomic.Bool
	return func(yield func(*models.ViewLogEntry, error) bool) {
		if consumed.Swap(true) {
			yield(nil, structures.ErrSequenceConsumed)
			return
		}
		for row, err := range v.table.Query(ctx, partitionKey) {
			if err != nil {
				yield(nil, tableError("query partition", err))
				return
			}
			entry, err := decodeEntry(row)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func (v *ViewLog) RecentDays() []string {
	return RecentPartitions(v.now(), RecentDayCount)
}

func (v *ViewLog) Enabled() bool {
	return true
}

func (v *ViewLog) Close() error {
	return v.table.Close()
}

func decodeEntry(row Row) (*models.ViewLogEntry, error) {
	var entry models.ViewLogEntry
	if err := json.Unmarshal(row.Value, &entry); err != nil {
		return nil, fmt.Errorf("decode view entry %s: %w", row.RowKey, err)
	}
	entry.PartitionKey = row.PartitionKey
	entry.RowKey = row.RowKey
	return &entry, nil
}

// tableError passes cancellation through untouched and marks everything
// else as a storage failure.
func tableError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return structures.Unavailable(op, err)
}

func single(err error) iter.Seq2[*models.ViewLogEntry, error] {
	return func(yield func(*models.ViewLogEntry, error) bool) {
		yield(nil, err)
	}
}

type noopViewLog struct{}

func (n *noopViewLog) Initialize(_ context.Context) error { return nil }

func (n *noopViewLog) AppendView(_ context.Context, _ string, _ int, _, _ string) error {
	return nil
}

func (n *noopViewLog) QueryToday(_ context.Context) iter.Seq2[*models.ViewLogEntry, error] {
	return empty
}

func (n *noopViewLog) QueryDay(_ context.Context, _ string) iter.Seq2[*models.ViewLogEntry, error] {
	return empty
}

func (n *noopViewLog) RecentDays() []string {
	return RecentPartitions(time.Now(), RecentDayCount)
}

func (n *noopViewLog) Enabled() bool { return false }

func (n *noopViewLog) Close() error { return nil }

func empty(func(*models.ViewLogEntry, error) bool) {}
