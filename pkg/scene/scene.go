package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// The world is built once and never mutated while a render is running.
type Scene struct {
	Name         string
	World        *geometry.HittableList
	CameraConfig geometry.CameraConfig
	Background   integrator.Background
	Settings     Settings
}

// Settings are the frame parameters a scene was composed for
type Settings struct {
	Width           int `json:"width"`           // Image width in pixels
	SamplesPerPixel int `json:"samplesPerPixel"` // Number of rays per pixel
	MaxDepth        int `json:"maxDepth"`        // Maximum ray bounce depth
}

// DefaultSettings returns the settings used by most built-in scenes
func DefaultSettings() Settings {
	return Settings{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        10,
	}
}

// NewScene creates an empty scene with the default sky and settings
func NewScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
		Background:   integrator.DefaultBackground(),
		Settings:     DefaultSettings(),
	}
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Point3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// rgb converts 8-bit channel values to a linear color
func rgb(r, g, b float64) core.Color {
	return core.NewVec3(r/255.0, g/255.0, b/255.0)
}

// frontCamera is the camera shared by the small showcase scenes
func frontCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.5, 4),
		LookAt:        core.NewVec3(0, 0, -3),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          45,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0,
		FocusDistance: 10,
	}
}
