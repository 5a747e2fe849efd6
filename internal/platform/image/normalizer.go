// Package image normalizes uploaded image buffers into the fixed format the
// API stores and serves: a 250x250 PNG.
package image

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// Normalized output dimensions. The resize is a hard resize: aspect ratio is
// not preserved.
const (
	OutputWidth  = 250
	OutputHeight = 250
)

// ErrUnsupportedImage is returned when the input bytes cannot be decoded as
// an image.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image data")

// Normalize decodes arbitrary-format image bytes and re-encodes them as a
// 250x250 PNG. Deterministic for identical input. Returns
// ErrUnsupportedImage when the input is not a decodable image.
func Normalize(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	resized := imaging.Resize(src, OutputWidth, OutputHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode normalized image: %w", err)
	}

	return buf.Bytes(), nil
}
