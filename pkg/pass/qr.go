package pass

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultImageSize is the side length in pixels of rendered passes.
const DefaultImageSize = 512

// RenderPNG renders a token as a QR code PNG.
func RenderPNG(token string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultImageSize
	}
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render pass: %w", err)
	}
	return png, nil
}
