package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations are immutable and may be shared by any number of shapes
// and render workers.
type Material interface {
	// Scatter returns the attenuated scattered ray, or false when the
	// incoming ray is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord is the scratch record filled in by a successful intersection.
// The closest hit overwrites earlier ones during scene traversal.
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Unit normal, always opposing the incident ray
	Material  Material    // Material of the hit object
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether ray hit the front face
	RayCount  int         // Rays traced through this record, diagnostics only
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Reset clears the record for reuse by the next primary sample
func (h *HitRecord) Reset() {
	*h = HitRecord{}
}
