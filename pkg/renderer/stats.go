package renderer

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int     // Total number of pixels rendered
	TotalSamples    int     // Total number of samples taken
	AverageSamples  float64 // Average samples per pixel
	SamplesPerPixel int     // Target samples per pixel for this pass
	RayCount        int64   // Rays traced, including every bounce
}

// PixelStats tracks the running sum for a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB sum of every sample
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}
