package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// arcSphereCenters places five spheres on an arc behind the focal point
var arcSphereCenters = []core.Point3{
	core.NewVec3(-3.363, 0.45, -3.205),
	core.NewVec3(-1.84, 0.45, -4.528),
	core.NewVec3(0.0, 0.45, -4.8),
	core.NewVec3(1.84, 0.45, -4.528),
	core.NewVec3(3.363, 0.45, -3.205),
}

// arcMaterials returns the materials for the arc, left to right
func arcMaterials() []material.Material {
	return []material.Material{
		material.NewLambertian(core.NewVec3(1, 1, 1)),
		material.NewMetal(rgb(64, 64, 64), 0.1),
		material.NewLambertian(rgb(122, 175, 238)),
		material.NewMetal(rgb(253, 253, 255), 0.0),
		material.NewMetal(rgb(208, 66, 70), 0.3),
	}
}

// addArc adds the five background spheres
func (s *Scene) addArc() {
	for i, mat := range arcMaterials() {
		s.AddSphere(arcSphereCenters[i], 0.9, mat)
	}
}

// NewGlassSphereScene creates five spheres on an arc with a large glass sphere in front
func NewGlassSphereScene() *Scene {
	s := NewScene("glass-sphere", frontCamera())
	s.addArc()

	s.AddSphere(core.NewVec3(0, 0.45, -1), 0.9, material.NewDielectric(1.5))

	// Ground
	s.AddSphere(core.NewVec3(0, -1000.45, -1.2), 1000, material.NewLambertian(rgb(72, 72, 72)))

	return s
}
