package renderer

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// FrameConfig is the flat configuration of one render
type FrameConfig struct {
	AspectRatio     float64 // Width / height
	Width           int     // Image width in pixels, height is derived
	SamplesPerPixel int     // Number of jittered rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	TileSize        int     // Size of each square tile in pixels
	NumWorkers      int     // Number of parallel workers (0 = use CPU count)
	Passes          int     // Number of progressive passes the samples are spread over
	Seed            uint64  // Base seed for the per-tile samplers
}

// DefaultFrameConfig returns sensible default values
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		AspectRatio:     3.0 / 2.0,
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        10,
		TileSize:        32,
		NumWorkers:      0,
		Passes:          1,
		Seed:            42,
	}
}

// FrameConfigForScene starts from the defaults and applies the scene's own
// aspect ratio and recommended settings
func FrameConfigForScene(s *scene.Scene) FrameConfig {
	config := DefaultFrameConfig()
	if s.CameraConfig.AspectRatio > 0 {
		config.AspectRatio = s.CameraConfig.AspectRatio
	}
	if s.Settings.Width > 0 {
		config.Width = s.Settings.Width
	}
	if s.Settings.SamplesPerPixel > 0 {
		config.SamplesPerPixel = s.Settings.SamplesPerPixel
	}
	if s.Settings.MaxDepth > 0 {
		config.MaxDepth = s.Settings.MaxDepth
	}
	return config
}

// Height returns floor(width / aspect ratio)
func (c FrameConfig) Height() int {
	if c.AspectRatio <= 0 {
		return 0
	}
	return int(float64(c.Width) / c.AspectRatio)
}

// Validate reports the first configuration error, if any
func (c FrameConfig) Validate() error {
	if c.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be > 0, got %g", c.AspectRatio)
	}
	if c.Width <= 0 {
		return fmt.Errorf("width must be > 0, got %d", c.Width)
	}
	if c.Height() <= 0 {
		return fmt.Errorf("height must be > 0, got %d (width %d, aspect ratio %g)", c.Height(), c.Width, c.AspectRatio)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be >= 1, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be > 0, got %d", c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("number of workers must be >= 0, got %d", c.NumWorkers)
	}
	if c.Passes < 1 || c.Passes > c.SamplesPerPixel {
		return fmt.Errorf("passes must be between 1 and samples per pixel (%d), got %d", c.SamplesPerPixel, c.Passes)
	}
	return nil
}
