package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewTenSphereScene creates the arc of five spheres with a row of five tinted
// glass beads in the foreground. The tints are drawn from seed.
func NewTenSphereScene(seed int64) *Scene {
	s := NewScene("ten-spheres", frontCamera())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))

	s.addArc()

	for i := 0; i < 5; i++ {
		tint := core.RandomVec3(sampler)
		center := core.NewVec3(-0.7+float64(i)*0.35, -0.28, 1.0)
		s.AddSphere(center, 0.15, material.NewTintedDielectric(1.5, tint))
	}

	// Ground
	s.AddSphere(core.NewVec3(0, -1000.45, -1.2), 1000, material.NewLambertian(rgb(72, 72, 72)))

	return s
}
