package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewThreeSphereScene creates a small scene: a mirror, a matte blue sphere and a glass bead
func NewThreeSphereScene() *Scene {
	s := NewScene("three-spheres", frontCamera())

	blue := material.NewLambertian(rgb(122, 175, 238))
	ground := material.NewLambertian(rgb(28, 28, 28))
	mirror := material.NewMetal(rgb(224, 232, 245), 0.0)
	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(1.10, 0.6, -4.0), 1.0, mirror)
	s.AddSphere(core.NewVec3(-1.3, 0.6, -2.9), 1.0, blue)
	s.AddSphere(core.NewVec3(0.01, 0.83, -0.1), 0.22, glass)

	// Ground
	s.AddSphere(core.NewVec3(0, -1000.45, -1.2), 1000, ground)

	return s
}
