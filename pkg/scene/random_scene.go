package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewRandomScene creates a field of small random spheres around three large
// ones. The same seed always yields the same scene.
func NewRandomScene(seed int64) *Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}
	s := NewScene("random", cameraConfig)
	s.Settings.MaxDepth = 50
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))

	// Ground
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(rgb(80, 144, 22)))

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewTintedDielectric(1.5, rgb(242, 111, 112)))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(rgb(111, 165, 242)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	// Keep the small spheres clear of the metal sphere
	boundary := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(boundary).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.66:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.85:
				albedo := core.RandomVec3Range(sampler, 0.5, 1.0)
				fuzz := core.RandomRange(sampler, 0.0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				albedo := core.RandomVec3Range(sampler, 0.8, 1.0)
				mat = material.NewTintedDielectric(1.5, albedo)
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	return s
}
