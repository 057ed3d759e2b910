package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// ReferenceSphereCenter is where the reference scene's small sphere sits.
// With one unjittered sample the lower-left pixel of a 2x2 frame looks along
// (1,1,-1), straight at it; the other three pixels see only sky.
var ReferenceSphereCenter = core.NewVec3(2, 2, -2)

// ReferenceAlbedo is the color of the reference scene's small sphere
var ReferenceAlbedo = core.NewVec3(0.8, 0.3, 0.1)

// NewReferenceScene creates the tiny regression scene: a huge ground sphere far
// below a pinhole camera looking down -z and one small matte sphere
func NewReferenceScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   1.0,
		Aperture:      0,
		FocusDistance: 1,
	}
	s := NewScene("reference", cameraConfig)
	s.Background = integrator.NewBackground(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0))
	s.Settings = Settings{Width: 2, SamplesPerPixel: 1, MaxDepth: 1}

	s.AddSphere(core.NewVec3(0, -1001, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(ReferenceSphereCenter, 0.5, material.NewLambertian(ReferenceAlbedo))

	return s
}
