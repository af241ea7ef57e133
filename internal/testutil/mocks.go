package testutil

import (
	"context"
	"imgstore/internal/models"
	"imgstore/internal/providers"
	"imgstore/internal/structures"
	"iter"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasMessage reports whether any recorded format string contains substr.
func (m *MockLogger) HasMessage(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if strings.Contains(l.Format, substr) {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu         sync.Mutex
	AssetOps   map[string]int // key: "op:backend:result"
	Views      map[string]int
	Archives   int
	CacheHits  int
	CacheMiss  int
	AssetBytes []int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMiss++
}

func (m *MockMetrics) IncAssetOperation(op, backend, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AssetOps == nil {
		m.AssetOps = make(map[string]int)
	}
	m.AssetOps[op+":"+backend+":"+result]++
}

func (m *MockMetrics) ObserveAssetBytes(_ string, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssetBytes = append(m.AssetBytes, size)
}

func (m *MockMetrics) IncViewsAppended(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Views == nil {
		m.Views = make(map[string]int)
	}
	m.Views[result]++
}

func (m *MockMetrics) ObserveArchiveDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Archives++
}

// MockViewLog implements viewlog.ViewLogInterface over an in-memory map of
// partitions. Entries are returned in the order they were stored.
type MockViewLog struct {
	mu         sync.Mutex
	Partitions map[string][]*models.ViewLogEntry
	Today      string
	Err        error
	Disabled   bool
	Appends    int
}

func (m *MockViewLog) Initialize(_ context.Context) error { return m.Err }

func (m *MockViewLog) AppendView(_ context.Context, username string, imageID int, caption, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Appends++
	if m.Partitions == nil {
		m.Partitions = make(map[string][]*models.ViewLogEntry)
	}
	m.Partitions[m.Today] = append(m.Partitions[m.Today], &models.ViewLogEntry{
		PartitionKey: m.Today,
		ImageID:      imageID,
		Username:     username,
		Caption:      caption,
		AssetURI:     uri,
	})
	return nil
}

func (m *MockViewLog) QueryToday(ctx context.Context) iter.Seq2[*models.ViewLogEntry, error] {
	return m.QueryDay(ctx, m.Today)
}

func (m *MockViewLog) QueryDay(_ context.Context, day string) iter.Seq2[*models.ViewLogEntry, error] {
	return func(yield func(*models.ViewLogEntry, error) bool) {
		m.mu.Lock()
		err := m.Err
		entries := append([]*models.ViewLogEntry(nil), m.Partitions[day]...)
		m.mu.Unlock()

		if err != nil {
			yield(nil, err)
			return
		}
		if len(day) != 8 {
			yield(nil, structures.ErrInvalidPartition)
			return
		}
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (m *MockViewLog) RecentDays() []string {
	return []string{m.Today}
}

func (m *MockViewLog) Enabled() bool { return !m.Disabled }

func (m *MockViewLog) Close() error { return nil }
