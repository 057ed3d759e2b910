package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Hittable is implemented by anything a ray can intersect.
// On a hit within (tMin, tMax) the record is overwritten and true returned;
// on a miss the record is left untouched.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool
}
