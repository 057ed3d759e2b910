package renderer

import (
	"context"
	"image"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds only read-only state and is shared by every worker.
type TileRenderer struct {
	world      geometry.Hittable
	camera     *geometry.Camera
	integrator integrator.Integrator
	width      int
	height     int
	maxDepth   int
	jitter     bool
}

// NewTileRenderer creates a new tile renderer for a frame
func NewTileRenderer(world geometry.Hittable, camera *geometry.Camera, integratorInst integrator.Integrator, config FrameConfig) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      config.Width,
		height:     config.Height(),
		maxDepth:   config.MaxDepth,
		// A single sample per pixel goes through the pixel corner unjittered
		jitter: config.SamplesPerPixel > 1,
	}
}

// RenderTileBounds brings every pixel in bounds up to targetSamples.
// pixelStats is the shared frame buffer; tiles never overlap, so no locking
// is needed. Cancellation is checked before each pixel.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, pixelStats []PixelStats, sampler core.Sampler, targetSamples int) (RenderStats, error) {
	stats := RenderStats{
		TotalPixels:     bounds.Dx() * bounds.Dy(),
		SamplesPerPixel: targetSamples,
	}

	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			ps := &pixelStats[row*tr.width+x]
			samples, rays := tr.samplePixel(x, row, ps, sampler, targetSamples)
			stats.TotalSamples += samples
			stats.RayCount += rays
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}

// samplePixel adds samples to one pixel until it reaches targetSamples
func (tr *TileRenderer) samplePixel(x, row int, ps *PixelStats, sampler core.Sampler, targetSamples int) (int, int64) {
	var rec material.HitRecord
	var rays int64
	initialSampleCount := ps.SampleCount

	for ps.SampleCount < targetSamples {
		jx, jy := 1.0, 1.0
		if tr.jitter {
			jx = sampler.Get1D()
			jy = sampler.Get1D()
		}

		u, v := ScreenUV(x, row, tr.width, tr.height, jx, jy)

		ray := tr.camera.GetRay(u, v, sampler)

		rec.Reset()
		color := tr.integrator.RayColor(ray, &rec, tr.world, tr.maxDepth, sampler)
		ps.AddSample(color)
		rays += int64(rec.RayCount)
	}

	return ps.SampleCount - initialSampleCount, rays
}

// ScreenUV maps a pixel (column x, row 0 at the top) plus a jitter offset to
// camera plane coordinates. Scanlines count up from the bottom of the image.
func ScreenUV(x, row, width, height int, jx, jy float64) (u, v float64) {
	y := height - 1 - row
	u = (jx + float64(x)) / planeExtent(width)
	v = (jy + float64(y)) / planeExtent(height)
	return u, v
}

// planeExtent maps pixel indices onto [0,1]. A one pixel wide axis uses 1
// instead of 0.
func planeExtent(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}
