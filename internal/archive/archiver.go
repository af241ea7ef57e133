package archive

import (
	"context"
	"errors"
	"fmt"
	"imgstore/internal/archive/interfaces"
	"imgstore/internal/models"
	"imgstore/internal/providers"
	"imgstore/internal/structures"
	"imgstore/internal/viewlog"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

const archiveSuffix = ".views.zst"

// Archiver snapshots a day partition of the view log into a compressed
// file. The view log itself is never modified.
type Archiver struct {
	dir        string
	viewLog    viewlog.ViewLogInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewArchiver(config *structures.Config, viewLog viewlog.ViewLogInterface, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Archiver {
	return &Archiver{
		dir:        config.Archive.Dir,
		viewLog:    viewLog,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

// Path is where the archive of day is written.
func (a *Archiver) Path(day string) string {
	return filepath.Join(a.dir, day+archiveSuffix)
}

func (a *Archiver) Exists(day string) bool {
	_, err := os.Stat(a.Path(day))
	return err == nil
}

// ArchiveDay writes every entry of the day partition to Path(day) and
// returns how many entries were written.
func (a *Archiver) ArchiveDay(ctx context.Context, day string) (int, error) {
	if a.dir == "" {
		return 0, errors.New("archive directory not configured")
	}
	if _, err := viewlog.ParseDay(day); err != nil {
		return 0, err
	}
	start := time.Now()

	snapshot := models.ViewArchive{Day: day, ArchivedAt: start.UTC(), Entries: []*models.ViewLogEntry{}}
	for entry, err := range a.viewLog.QueryDay(ctx, day) {
		if err != nil {
			return 0, err
		}
		snapshot.Entries = append(snapshot.Entries, entry)
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return 0, err
	}
	data, err := a.compressor.Compress(jsonData)
	if err != nil {
		return 0, err
	}
	if err := a.writeFile(a.Path(day), data); err != nil {
		return 0, err
	}

	a.metrics.ObserveArchiveDuration(time.Since(start))
	a.logger.Infof(providers.TypeViews, "Archived %d entries of %s to %s", len(snapshot.Entries), day, a.Path(day))
	return len(snapshot.Entries), nil
}

func (a *Archiver) writeFile(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(fileName), "."+filepath.Base(fileName)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpFile := file.Name()

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Chmod(tmpFile, 0644); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return nil
}

// LoadArchive reads an archive written by ArchiveDay.
func (a *Archiver) LoadArchive(fileName string) (*models.ViewArchive, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", fileName, err)
	}
	var snapshot models.ViewArchive
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fileName, err)
	}
	return &snapshot, nil
}

func (a *Archiver) Close() {
	a.compressor.Close()
}
