package assets

import (
	"context"
	"errors"
	"fmt"
	"imgstore/internal/providers"
	"imgstore/internal/structures"
	"io"
	"strings"
)

type AssetStoreInterface interface {
	Save(ctx context.Context, imageID int, r io.Reader) error
	Remove(ctx context.Context, imageID int) error
	ResolveReference(imageID int) string
	Kind() BackendKind
}

// AssetStore validates uploads and dispatches to the backend chosen at startup.
type AssetStore struct {
	backend        Backend
	maxUploadBytes int64
	logger         providers.Logger
	metrics        providers.MetricsProviderInterface
}

// NewAssetStore selects the backend from configuration: an empty
// imageStoreConnection means local storage, anything else is parsed as a
// remote descriptor and must be valid.
func NewAssetStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*AssetStore, error) {
	var (
		backend Backend
		err     error
	)
	if strings.TrimSpace(conf.Storage.ImageStoreConnection) == "" {
		logger.Infof(providers.TypeAssets, "Storing images on local file system under %s", conf.Storage.WebRoot)
		backend, err = NewLocalBackend(conf.Storage.WebRoot)
	} else {
		logger.Infof(providers.TypeAssets, "Using remote object storage, bucket %s", ContainerName)
		backend, err = NewRemoteBackend(conf.Storage.ImageStoreConnection)
	}
	if err != nil {
		return nil, err
	}
	return NewAssetStoreWithBackend(backend, conf.Storage.MaxUploadBytes, logger, metrics), nil
}

func NewAssetStoreWithBackend(backend Backend, maxUploadBytes int64, logger providers.Logger, metrics providers.MetricsProviderInterface) *AssetStore {
	return &AssetStore{
		backend:        backend,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
		metrics:        metrics,
	}
}

func (s *AssetStore) Backend() Backend {
	return s.backend
}

func (s *AssetStore) Kind() BackendKind {
	return s.backend.Kind()
}

// Save validates r as a JPEG and stores it under imageID, replacing any
// previous content. Rejected uploads leave the backend untouched.
func (s *AssetStore) Save(ctx context.Context, imageID int, r io.Reader) error {
	kind := s.backend.Kind().String()

	data, err := s.readUpload(r)
	if err == nil {
		err = ValidateJPEG(data)
	}
	if err != nil {
		if errors.Is(err, structures.ErrFormat) {
			s.logger.Infof(providers.TypeAssets, "Incorrect image format for %d, not saving: %s", imageID, err)
			s.metrics.IncAssetOperation("save", kind, providers.ResultRejected)
		} else {
			s.metrics.IncAssetOperation("save", kind, providers.ResultError)
		}
		return err
	}

	s.logger.Infof(providers.TypeAssets, "Saving image %d to %s storage", imageID, kind)
	if err := s.backend.Save(ctx, imageID, data); err != nil {
		s.logger.Errorf(providers.TypeAssets, "Saving image %d failed: %s", imageID, err)
		s.metrics.IncAssetOperation("save", kind, resultOf(err))
		return err
	}
	s.metrics.IncAssetOperation("save", kind, providers.ResultOK)
	s.metrics.ObserveAssetBytes(kind, len(data))
	return nil
}

func (s *AssetStore) readUpload(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, structures.ErrEmptyImage
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: image larger than %d bytes", structures.ErrFormat, s.maxUploadBytes)
	}
	return data, nil
}

// Remove deletes the asset for imageID; removing a missing asset succeeds.
func (s *AssetStore) Remove(ctx context.Context, imageID int) error {
	kind := s.backend.Kind().String()
	s.logger.Infof(providers.TypeAssets, "Removing image %d from %s storage", imageID, kind)
	if err := s.backend.Remove(ctx, imageID); err != nil {
		s.logger.Errorf(providers.TypeAssets, "Removing image %d failed: %s", imageID, err)
		s.metrics.IncAssetOperation("remove", kind, resultOf(err))
		return err
	}
	s.metrics.IncAssetOperation("remove", kind, providers.ResultOK)
	return nil
}

// ResolveReference never touches the backend; the asset may not exist.
func (s *AssetStore) ResolveReference(imageID int) string {
	return s.backend.Reference(imageID)
}

func resultOf(err error) string {
	if errors.Is(err, structures.ErrStorageUnavailable) {
		return providers.ResultUnavailable
	}
	return providers.ResultError
}
