package renderer

import (
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func TestFrameConfig_Height(t *testing.T) {
	tests := []struct {
		width    int
		aspect   float64
		expected int
	}{
		{400, 3.0 / 2.0, 266},
		{400, 16.0 / 9.0, 225},
		{2, 1.0, 2},
		{1, 2.0, 0},
	}

	for _, tt := range tests {
		config := FrameConfig{Width: tt.width, AspectRatio: tt.aspect}
		if got := config.Height(); got != tt.expected {
			t.Errorf("Height(%d, %g) = %d, want %d", tt.width, tt.aspect, got, tt.expected)
		}
	}
}

func TestFrameConfig_Validate(t *testing.T) {
	valid := DefaultFrameConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *FrameConfig)
		wantErr string
	}{
		{"zero width", func(c *FrameConfig) { c.Width = 0 }, "width"},
		{"zero height", func(c *FrameConfig) { c.Width = 1; c.AspectRatio = 2 }, "height"},
		{"zero aspect", func(c *FrameConfig) { c.AspectRatio = 0 }, "aspect ratio"},
		{"no samples", func(c *FrameConfig) { c.SamplesPerPixel = 0 }, "samples per pixel"},
		{"negative depth", func(c *FrameConfig) { c.MaxDepth = -1 }, "max depth"},
		{"zero tile size", func(c *FrameConfig) { c.TileSize = 0 }, "tile size"},
		{"negative workers", func(c *FrameConfig) { c.NumWorkers = -2 }, "workers"},
		{"zero passes", func(c *FrameConfig) { c.Passes = 0 }, "passes"},
		{"more passes than samples", func(c *FrameConfig) { c.SamplesPerPixel = 2; c.Passes = 3 }, "passes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultFrameConfig()
			tt.mutate(&config)
			err := config.Validate()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %q", tt.wantErr, err.Error())
			}
		})
	}

	zeroDepth := DefaultFrameConfig()
	zeroDepth.MaxDepth = 0
	if err := zeroDepth.Validate(); err != nil {
		t.Errorf("Depth 0 is allowed, got %v", err)
	}
}

func TestFrameConfigForScene(t *testing.T) {
	s := scene.NewRandomScene(1)
	config := FrameConfigForScene(s)

	if config.AspectRatio != s.CameraConfig.AspectRatio {
		t.Errorf("Expected aspect ratio %g, got %g", s.CameraConfig.AspectRatio, config.AspectRatio)
	}
	if config.MaxDepth != 50 {
		t.Errorf("Expected scene max depth 50, got %d", config.MaxDepth)
	}
	if config.TileSize != DefaultFrameConfig().TileSize {
		t.Errorf("Expected default tile size, got %d", config.TileSize)
	}
}
