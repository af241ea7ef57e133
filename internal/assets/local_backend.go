package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"imgstore/internal/structures"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalBackend keeps images as img-<id>.jpg files under <webRoot>/data/images.
type LocalBackend struct {
	dir string
}

func NewLocalBackend(webRoot string) (*LocalBackend, error) {
	dir := filepath.Join(webRoot, filepath.FromSlash(ImagesSubpath))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalBackend{dir: dir}, nil
}

func localFileName(imageID int) string {
	return fmt.Sprintf("img-%d.jpg", imageID)
}

// Dir is the directory served at the local reference prefix.
func (b *LocalBackend) Dir() string {
	return b.dir
}

// Path returns the filesystem location for imageID.
func (b *LocalBackend) Path(imageID int) string {
	return filepath.Join(b.dir, localFileName(imageID))
}

// Save writes to a temp file beside the target and renames it into place,
// so readers never observe a partial image.
func (b *LocalBackend) Save(ctx context.Context, imageID int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return structures.Unavailable("create image directory", err)
	}

	tmp, err := os.CreateTemp(b.dir, ".upload-*.tmp")
	if err != nil {
		return structures.Unavailable("create temp file", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		cleanup()
		return structures.Unavailable("write image", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return structures.Unavailable("sync image", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return structures.Unavailable("close image", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return structures.Unavailable("chmod image", err)
	}

	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, b.Path(imageID)); err != nil {
		_ = os.Remove(tmpPath)
		return structures.Unavailable("rename image", err)
	}
	return nil
}

// Remove deletes the file for imageID. A missing file is not an error.
func (b *LocalBackend) Remove(ctx context.Context, imageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(b.Path(imageID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return structures.Unavailable("remove image", err)
	}
	return nil
}

// Reference is the path relative to the serving root, e.g. /data/images/img-42.jpg.
func (b *LocalBackend) Reference(imageID int) string {
	return "/" + path.Join(ImagesSubpath, localFileName(imageID))
}

func (b *LocalBackend) Kind() BackendKind {
	return KindLocal
}
