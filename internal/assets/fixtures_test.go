package assets

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func noiseImage(side int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func jpegBytes(t *testing.T, side int, seed int64) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noiseImage(side, seed), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// jpegOfSize returns a decodable JPEG of exactly size bytes. The decoder
// stops at the EOI marker, so zero padding after it is harmless.
func jpegOfSize(t *testing.T, size int) []byte {
	t.Helper()
	for side := 160; side >= 8; side -= 8 {
		b := jpegBytes(t, side, int64(side))
		if len(b) <= size {
			return append(b, make([]byte, size-len(b))...)
		}
	}
	t.Fatalf("could not build a %d byte jpeg", size)
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, noiseImage(16, 1)))
	return buf.Bytes()
}
