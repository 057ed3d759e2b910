package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// ShadowAcneEpsilon is the minimum hit distance accepted after a bounce
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a
// gradient sky. Paths end at the depth limit, on absorption, or on escape.
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{background: background}
}

// Background returns the sky gradient used for escaped rays
func (pt *PathTracingIntegrator) Background() Background {
	return pt.background
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, rec *material.HitRecord, world geometry.Hittable, depth int, sampler core.Sampler) core.Color {
	rec.RayCount++

	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	if !world.Hit(ray, ShadowAcneEpsilon, math.Inf(1), rec) {
		return pt.background.Color(ray)
	}

	scatter, didScatter := rec.Material.Scatter(ray, rec, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, rec, world, depth-1, sampler))
}
