package assets

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"imgstore/internal/structures"

	"github.com/gabriel-vasile/mimetype"
)

// ValidateJPEG accepts only data that sniffs as image/jpeg and decodes
// completely. Empty input is rejected before any decode.
func ValidateJPEG(data []byte) error {
	if len(data) == 0 {
		return structures.ErrEmptyImage
	}
	if mt := mimetype.Detect(data); !mt.Is(ContentType) {
		return fmt.Errorf("%w: detected %s", structures.ErrFormat, mt.String())
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %w", structures.ErrFormat, err)
	}
	return nil
}
