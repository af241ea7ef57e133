package viewlog

import (
	"fmt"
	"imgstore/internal/structures"
	"math"
	"time"
)

const (
	// TableName is the table every view entry is written to.
	TableName = "imageviews"
	// RecentDayCount is how many partitions RecentDays lists.
	RecentDayCount = 14

	partitionLayout = "01022006"
)

// PartitionKey is the UTC day of t formatted as MMDDYYYY.
func PartitionKey(t time.Time) string {
	return t.UTC().Format(partitionLayout)
}

// InvertedTimestamp decreases as t increases, so ascending key order is
// newest first.
func InvertedTimestamp(t time.Time) int64 {
	return math.MaxInt64 - t.UnixNano()
}

// RowKey is <imageID>-<inverted timestamp>_<unique>. The inverted part is
// zero padded to a fixed width so byte order matches numeric order.
func RowKey(imageID int, t time.Time, unique string) string {
	return fmt.Sprintf("%d-%019d_%s", imageID, InvertedTimestamp(t), unique)
}

// ParseDay checks that day is a real MMDDYYYY date and returns its UTC midnight.
func ParseDay(day string) (time.Time, error) {
	if len(day) != len(partitionLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", structures.ErrInvalidPartition, day)
	}
	t, err := time.ParseInLocation(partitionLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", structures.ErrInvalidPartition, day)
	}
	return t, nil
}

// RecentPartitions lists the partition keys of the n days ending at now, newest first.
func RecentPartitions(now time.Time, n int) []string {
	days := make([]string, 0, n)
	day := now.UTC()
	for i := 0; i < n; i++ {
		days = append(days, PartitionKey(day.AddDate(0, 0, -i)))
	}
	return days
}
