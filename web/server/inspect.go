package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	SphereIndex  int                    `json:"sphereIndex"`
	Center       [3]float64             `json:"center"`
	Radius       float64                `json:"radius"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes the first sphere hit by an inspection ray
type InspectResult struct {
	Hit         bool
	HitRecord   material.HitRecord
	Sphere      *geometry.Sphere
	SphereIndex int
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo reports the material type and its parameters
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through a pixel at offset (jx, jy) and returns the
// closest sphere it hits
func inspectPixel(sceneObj *scene.Scene, config renderer.FrameConfig, pixelX, row int, jx, jy float64) InspectResult {
	cameraConfig := sceneObj.CameraConfig
	cameraConfig.AspectRatio = config.AspectRatio
	camera := geometry.NewCamera(cameraConfig)

	// The lens sample is fixed so repeated inspections agree
	sampler := core.NewMCGSampler(config.Seed)
	u, v := renderer.ScreenUV(pixelX, row, config.Width, config.Height(), jx, jy)
	ray := camera.GetRay(u, v, sampler)

	result := InspectResult{SphereIndex: -1}
	closest := math.Inf(1)
	for i, object := range sceneObj.World.Objects {
		var rec material.HitRecord
		if object.Hit(ray, integrator.ShadowAcneEpsilon, closest, &rec) {
			closest = rec.T
			result.Hit = true
			result.HitRecord = rec
			result.SphereIndex = i
			result.Sphere, _ = object.(*geometry.Sphere)
		}
	}
	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.MaxPasses = 1
	req.MaxDepth = -1
	config := s.frameConfig(req, sceneObj)

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, config.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, err := parseIntParam(query, "y", -1, 0, config.Height()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pixelX < 0 || row < 0 {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	jx, err := parseFloatParam(query, "jx", 0.5, 0, 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	jy, err := parseFloatParam(query, "jy", 0.5, 0, 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, config, pixelX, row, jx, jy)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, SphereIndex: -1})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		SphereIndex:  result.SphereIndex,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties:   materialProps,
	}
	if result.Sphere != nil {
		response.Center = vecArray(result.Sphere.Center)
		response.Radius = result.Sphere.Radius
	}

	writeJSON(w, http.StatusOK, response)
}
