package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Background is the sky gradient returned for rays that escape the scene.
// Horizon is used for rays pointing straight down, Zenith for straight up.
type Background struct {
	Horizon core.Color `json:"horizon"`
	Zenith  core.Color `json:"zenith"`
}

// NewBackground creates a gradient background
func NewBackground(horizon, zenith core.Color) Background {
	return Background{Horizon: horizon, Zenith: zenith}
}

// DefaultBackground returns the pale lavender to sky blue gradient
func DefaultBackground() Background {
	return Background{
		Horizon: core.NewVec3(248.0/255.0, 245.0/255.0, 254.0/255.0),
		Zenith:  core.NewVec3(139.0/255.0, 179.0/255.0, 237.0/255.0),
	}
}

// Color returns the gradient color for a ray direction.
// The direction must be non-zero.
func (b Background) Color(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Unit()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return b.Horizon.Multiply(1.0 - t).Add(b.Zenith.Multiply(t))
}
