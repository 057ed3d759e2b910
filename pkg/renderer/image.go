package renderer

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// FinalImage holds the accumulated, unnormalized color sums of a frame.
// Pixels are row-major with the top row first.
type FinalImage struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Pixels          []core.Color
}

// NewFinalImage creates a black image
func NewFinalImage(width, height int) *FinalImage {
	return &FinalImage{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color sum of the pixel at column x, row y (row 0 at the top)
func (img *FinalImage) At(x, y int) core.Color {
	return img.Pixels[y*img.Width+x]
}

// Average returns the mean sample color of a pixel
func (img *FinalImage) Average(x, y int) core.Color {
	if img.SamplesPerPixel == 0 {
		return core.Vec3{}
	}
	return img.At(x, y).Multiply(1.0 / float64(img.SamplesPerPixel))
}

// AverageLuminance returns the mean luminance over all pixels
func (img *FinalImage) AverageLuminance() float64 {
	if len(img.Pixels) == 0 || img.SamplesPerPixel == 0 {
		return 0
	}
	total := 0.0
	for _, sum := range img.Pixels {
		total += sum.Luminance()
	}
	return total / float64(len(img.Pixels)) / float64(img.SamplesPerPixel)
}
