package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along ray. rec is scratch
	// space owned by the caller and is overwritten along the path.
	RayColor(ray core.Ray, rec *material.HitRecord, world geometry.Hittable, depth int, sampler core.Sampler) core.Color
}
