package structures

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat rejects an upload that is not a decodable JPEG. Nothing is written.
	ErrFormat = errors.New("image format not accepted")
	// ErrEmptyImage is returned for zero-length uploads, before any decode is attempted.
	ErrEmptyImage = fmt.Errorf("%w: empty image", ErrFormat)
	// ErrStorageUnavailable is reported when a backend cannot be reached or refuses the operation.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrSequenceConsumed = errors.New("view sequence already consumed")
	ErrInvalidPartition = errors.New("invalid partition key")
)

// ConfigurationError is fatal at startup: the named setting could not be parsed.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Unavailable wraps a backend failure so callers can match ErrStorageUnavailable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
