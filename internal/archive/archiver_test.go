package archive

import (
	"context"
	"errors"
	"imgstore/internal/models"
	"imgstore/internal/structures"
	"imgstore/internal/testutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archiveConfig(dir string) *structures.Config {
	return &structures.Config{
		Archive: structures.ArchiveConfig{Dir: dir, Interval: time.Second},
	}
}

func sampleViewLog() *testutil.MockViewLog {
	ts := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	return &testutil.MockViewLog{
		Today: "03082024",
		Partitions: map[string][]*models.ViewLogEntry{
			"03072024": {
				{PartitionKey: "03072024", RowKey: "42-2_b", EntryTimestamp: ts.Add(time.Minute), ImageID: 42, Username: "bob"},
				{PartitionKey: "03072024", RowKey: "42-3_a", EntryTimestamp: ts, ImageID: 42, Username: "alice"},
			},
		},
	}
}

func TestArchiver_ArchiveDayAndLoad(t *testing.T) {
	dir := t.TempDir()
	metrics := &testutil.MockMetrics{}
	a := NewArchiver(archiveConfig(dir), sampleViewLog(), &testutil.MockCompressor{}, &testutil.MockLogger{}, metrics)

	n, err := a.ArchiveDay(context.Background(), "03072024")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, filepath.Join(dir, "03072024.views.zst"), a.Path("03072024"))
	assert.True(t, a.Exists("03072024"))
	assert.Equal(t, 1, metrics.Archives)

	snapshot, err := a.LoadArchive(a.Path("03072024"))
	require.NoError(t, err)
	assert.Equal(t, "03072024", snapshot.Day)
	require.Len(t, snapshot.Entries, 2)
	assert.Equal(t, "bob", snapshot.Entries[0].Username)
	assert.Equal(t, "42-3_a", snapshot.Entries[1].RowKey)
}

func TestArchiver_WithZstd(t *testing.T) {
	dir := t.TempDir()
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	a := NewArchiver(archiveConfig(dir), sampleViewLog(), comp, &testutil.MockLogger{}, &testutil.MockMetrics{})
	defer a.Close()

	_, err = a.ArchiveDay(context.Background(), "03072024")
	require.NoError(t, err)

	raw, err := os.ReadFile(a.Path("03072024"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "alice")

	snapshot, err := a.LoadArchive(a.Path("03072024"))
	require.NoError(t, err)
	assert.Len(t, snapshot.Entries, 2)
}

func TestArchiver_EmptyPartition(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(archiveConfig(dir), sampleViewLog(), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	n, err := a.ArchiveDay(context.Background(), "01012024")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	snapshot, err := a.LoadArchive(a.Path("01012024"))
	require.NoError(t, err)
	assert.Empty(t, snapshot.Entries)
}

func TestArchiver_InvalidDay(t *testing.T) {
	a := NewArchiver(archiveConfig(t.TempDir()), sampleViewLog(), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	_, err := a.ArchiveDay(context.Background(), "2024-03-07")
	assert.ErrorIs(t, err, structures.ErrInvalidPartition)
}

func TestArchiver_NoDirectory(t *testing.T) {
	a := NewArchiver(archiveConfig(""), sampleViewLog(), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	_, err := a.ArchiveDay(context.Background(), "03072024")
	assert.Error(t, err)
}

func TestArchiver_QueryErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	vl := sampleViewLog()
	vl.Err = structures.Unavailable("query partition", errors.New("db closed"))
	a := NewArchiver(archiveConfig(dir), vl, &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	_, err := a.ArchiveDay(context.Background(), "03072024")
	assert.ErrorIs(t, err, structures.ErrStorageUnavailable)
	assert.False(t, a.Exists("03072024"))
}

func TestArchiver_CompressErrorLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	a := NewArchiver(archiveConfig(dir), sampleViewLog(), comp, &testutil.MockLogger{}, &testutil.MockMetrics{})

	_, err := a.ArchiveDay(context.Background(), "03072024")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchiver_LoadArchiveErrors(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(archiveConfig(dir), sampleViewLog(), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	_, err := a.LoadArchive(filepath.Join(dir, "missing.views.zst"))
	assert.True(t, os.IsNotExist(err))

	corrupt := filepath.Join(dir, "corrupt.views.zst")
	require.NoError(t, os.WriteFile(corrupt, []byte("not json"), 0644))
	_, err = a.LoadArchive(corrupt)
	assert.Error(t, err)
}

func TestArchiver_CloseClosesCompressor(t *testing.T) {
	comp := &testutil.MockCompressor{}
	a := NewArchiver(archiveConfig(t.TempDir()), sampleViewLog(), comp, &testutil.MockLogger{}, &testutil.MockMetrics{})
	a.Close()
	assert.True(t, comp.Closed)
}

func TestArchiver_ConcurrentArchivesOfSameDay(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(archiveConfig(dir), sampleViewLog(), &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.ArchiveDay(context.Background(), "03072024")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	snapshot, err := a.LoadArchive(a.Path("03072024"))
	require.NoError(t, err)
	assert.Len(t, snapshot.Entries, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "03072024.views.zst", entries[0].Name())

	info, err := os.Stat(a.Path("03072024"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
