// Package output turns accumulated color sums into 8-bit images and files.
package output

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// maxChannel keeps 256*sqrt(v) strictly below 256
const maxChannel = 0.999

// EncodeChannel averages a channel sum over the sample count and applies
// gamma 2: floor(256 * sqrt(clamp(sum/spp, 0, 0.999))). NaN encodes as 0.
func EncodeChannel(sum float64, samplesPerPixel int) uint8 {
	scale := 1.0 / float64(samplesPerPixel)
	value := sum * scale
	if math.IsNaN(value) {
		return 0
	}
	value = math.Max(0, math.Min(maxChannel, value))
	return uint8(256.0 * math.Sqrt(value))
}

// EncodeColor tone maps an accumulated pixel to an opaque RGBA color
func EncodeColor(sum core.Color, samplesPerPixel int) color.RGBA {
	return color.RGBA{
		R: EncodeChannel(sum.X, samplesPerPixel),
		G: EncodeChannel(sum.Y, samplesPerPixel),
		B: EncodeChannel(sum.Z, samplesPerPixel),
		A: 255,
	}
}

// ToRGBA converts a final image to an *image.RGBA, top row first
func ToRGBA(img *renderer.FinalImage) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgba.SetRGBA(x, y, EncodeColor(img.At(x, y), img.SamplesPerPixel))
		}
	}
	return rgba
}

// RGBABytes returns the image as a flat RGBA byte buffer, four bytes per pixel
func RGBABytes(img *renderer.FinalImage) []byte {
	buf := make([]byte, 0, len(img.Pixels)*4)
	for _, sum := range img.Pixels {
		c := EncodeColor(sum, img.SamplesPerPixel)
		buf = append(buf, c.R, c.G, c.B, c.A)
	}
	return buf
}
