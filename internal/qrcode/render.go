package qrcode

import (
	"errors"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels of rendered images.
const DefaultSize = 256

// ErrEmptyImage is returned when encoding yields no bytes.
var ErrEmptyImage = errors.New("qr encoder returned an empty image")

// Renderer encodes text as a PNG QR code with fixed settings.
type Renderer struct {
	level goqrcode.RecoveryLevel
	size  int
}

// NewRenderer returns a Renderer producing size x size PNGs at medium
// error correction. A non-positive size falls back to DefaultSize.
func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{level: goqrcode.Medium, size: size}
}

// Render returns the PNG encoding of data. Output is deterministic for a given input.
func (r *Renderer) Render(data string) ([]byte, error) {
	png, err := goqrcode.Encode(data, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	if len(png) == 0 {
		return nil, ErrEmptyImage
	}
	return png, nil
}
