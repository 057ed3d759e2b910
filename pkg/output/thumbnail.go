package output

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to maxWidth, preserving its aspect ratio.
// Images already narrower than maxWidth, or a zero maxWidth, are returned unchanged.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Bilinear)
}

// PNGBase64 encodes img as a base64 PNG, suitable for a data URL or SSE payload
func PNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
