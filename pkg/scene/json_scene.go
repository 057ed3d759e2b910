package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// MaterialCfg describes one named material in a scene file
type MaterialCfg struct {
	Type   string     `json:"type"` // lambertian, metal or dielectric
	Albedo *core.Vec3 `json:"albedo,omitempty"`
	Fuzz   float64    `json:"fuzz,omitempty"`
	IR     float64    `json:"ir,omitempty"`
}

// SphereCfg places a sphere that references a material by name
type SphereCfg struct {
	Center   core.Vec3 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

// SceneCfg is the on-disk JSON form of a scene
type SceneCfg struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      geometry.CameraConfig  `json:"camera"`
	Background  *integrator.Background `json:"background,omitempty"`
	Settings    *Settings              `json:"settings,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build validates the material and constructs it (no defaults beyond white albedo)
func (mc MaterialCfg) Build() (material.Material, error) {
	albedo := core.NewVec3(1, 1, 1)
	if mc.Albedo != nil {
		albedo = *mc.Albedo
	}

	switch strings.ToLower(mc.Type) {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, mc.Fuzz), nil
	case "dielectric":
		if mc.IR <= 0 {
			return nil, fmt.Errorf("dielectric ir must be > 0, got %g", mc.IR)
		}
		return material.NewTintedDielectric(mc.IR, albedo), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// Build validates the config and constructs the scene. Materials are built
// once and shared by every sphere that names them.
func (cfg SceneCfg) Build() (*Scene, error) {
	if cfg.Camera.VFov <= 0 {
		return nil, fmt.Errorf("camera vfov must be > 0, got %g", cfg.Camera.VFov)
	}
	if cfg.Camera.AspectRatio <= 0 {
		return nil, fmt.Errorf("camera aspectRatio must be > 0, got %g", cfg.Camera.AspectRatio)
	}
	if cfg.Camera.LookFrom == cfg.Camera.LookAt {
		return nil, fmt.Errorf("camera lookFrom and lookAt must differ")
	}
	if cfg.Camera.Up == (core.Vec3{}) {
		cfg.Camera.Up = core.NewVec3(0, 1, 0)
	}
	if cfg.Camera.Up.Cross(cfg.Camera.LookFrom.Subtract(cfg.Camera.LookAt)).NearZero() {
		return nil, fmt.Errorf("camera up must not be parallel to the view direction")
	}

	materials := make(map[string]material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		mat, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	s := NewScene(name, cfg.Camera)
	if cfg.Background != nil {
		s.Background = *cfg.Background
	}
	if cfg.Settings != nil {
		if cfg.Settings.Width > 0 {
			s.Settings.Width = cfg.Settings.Width
		}
		if cfg.Settings.SamplesPerPixel > 0 {
			s.Settings.SamplesPerPixel = cfg.Settings.SamplesPerPixel
		}
		if cfg.Settings.MaxDepth > 0 {
			s.Settings.MaxDepth = cfg.Settings.MaxDepth
		}
	}

	for i, sc := range cfg.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
		}
		if sc.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be > 0, got %g", i, sc.Radius)
		}
		s.AddSphere(sc.Center, sc.Radius, mat)
	}

	return s, nil
}

// ParseJSONScene decodes and builds a scene from JSON bytes
func ParseJSONScene(data []byte) (*Scene, error) {
	var cfg SceneCfg
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return cfg.Build()
}

// LoadJSONScene reads a scene file from disk
func LoadJSONScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := ParseJSONScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
