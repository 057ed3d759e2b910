package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Point3 `json:"lookFrom"`      // Camera position
	LookAt        core.Point3 `json:"lookAt"`        // Point the camera is looking at
	Up            core.Vec3   `json:"up"`            // Up direction (usually 0,1,0)
	VFov          float64     `json:"vfov"`          // Vertical field of view in degrees
	AspectRatio   float64     `json:"aspectRatio"`   // Width / height
	Aperture      float64     `json:"aperture"`      // Lens diameter, 0 = pinhole
	FocusDistance float64     `json:"focusDistance"` // Distance to focus plane (0 = auto-calculate)
}

// Camera generates rays using a thin-lens model
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera derives the camera basis and viewport from the config
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Unit()
	u := config.Up.Cross(w).Unit()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner of the viewport.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// Basis returns the camera's orthonormal u (right), v (up) and w (backward) vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
