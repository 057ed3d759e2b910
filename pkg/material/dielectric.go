package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64    // Index of refraction (e.g., 1.5 for glass)
	Albedo          core.Color // White for clear glass
}

// NewDielectric creates a clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: core.NewVec3(1, 1, 1)}
}

// NewTintedDielectric creates a dielectric that absorbs part of the transmitted light
func NewTintedDielectric(refractiveIndex float64, albedo core.Color) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: albedo}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // entering the material
	} else {
		refractionRatio = d.RefractiveIndex // leaving the material
	}

	unitDirection := rayIn.Direction.Unit()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0
	// Drawn on every scatter so the sample stream does not depend on the branch taken
	shouldReflect := sampler.Get1D() < Reflectance(cosTheta, refractionRatio)

	var direction core.Vec3
	if cannotRefract || shouldReflect {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: d.Albedo,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
