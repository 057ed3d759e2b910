package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// mcgMultiplier is the 64-bit multiplicative congruential generator constant
const mcgMultiplier = 0xda942042e4dd58b5

// MCGSampler is a 64-bit multiplicative congruential generator.
// It is not safe for concurrent use; give each worker its own instance.
type MCGSampler struct {
	state uint64
}

// NewMCGSampler creates an MCG sampler. The state must be odd, so the low bit
// of the seed is forced on.
func NewMCGSampler(seed uint64) *MCGSampler {
	return &MCGSampler{state: seed | 1}
}

// Get1D returns the high 32 bits of the next state scaled into [0, 1)
func (m *MCGSampler) Get1D() float64 {
	m.state *= mcgMultiplier
	return float64(m.state>>32) / (1 << 32)
}

// Get2D returns two values in [0, 1)
func (m *MCGSampler) Get2D() Vec2 {
	return NewVec2(m.Get1D(), m.Get1D())
}

// Get3D returns three values in [0, 1)
func (m *MCGSampler) Get3D() Vec3 {
	return NewVec3(m.Get1D(), m.Get1D(), m.Get1D())
}

// RandomRange returns a uniform float in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}

// RandomVec3Range returns a vector with each component uniform in [min, max)
func RandomVec3Range(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(
		RandomRange(sampler, min, max),
		RandomRange(sampler, min, max),
		RandomRange(sampler, min, max),
	)
}

// RandomInUnitSphere rejection-samples a point strictly inside the unit ball
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3Range(sampler, -1, 1)
		if p.LengthSquared() >= 1 {
			continue
		}
		return p
	}
}

// RandomUnitVector returns a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return RandomInUnitSphere(sampler).Unit()
}

// RandomInHemisphere returns a point in the unit ball on the same side as normal
func RandomInHemisphere(sampler Sampler, normal Vec3) Vec3 {
	inUnitSphere := RandomInUnitSphere(sampler)
	if inUnitSphere.Dot(normal) > 0 {
		return inUnitSphere
	}
	return inUnitSphere.Negate()
}

// RandomInUnitDisk rejection-samples a point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(RandomRange(sampler, -1, 1), RandomRange(sampler, -1, 1), 0)
		if p.LengthSquared() >= 1 {
			continue
		}
		return p
	}
}
