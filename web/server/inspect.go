package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/literal-raytracer/pkg/core"
	"github.com/df07/literal-raytracer/pkg/geometry"
	"github.com/df07/literal-raytracer/pkg/material"
	"github.com/df07/literal-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Surface      int                    `json:"surface"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material descriptor and the values it
// samples to at the hit uv
func (s *Server) extractMaterialInfo(desc material.Descriptor, snapshot material.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"shadingModel":    desc.ShadingModel,
		"baseColor":       vec3Array(desc.BaseColor),
		"color":           hexColor(snapshot.BaseColor),
		"metallic":        snapshot.Metallic,
		"smoothness":      snapshot.Smoothness,
		"baseColorMapped": desc.BaseColorTexture != nil,
		"maskMapped":      desc.MaskTexture != nil,
	}
}

// InspectResult contains information about the surface under a pixel
type InspectResult struct {
	Hit      bool
	Record   core.Hit
	Shape    geometry.Shape
	Material material.Descriptor
	Snapshot material.Snapshot
}

// inspectPixel casts a ray through the centre of a pixel, counted from the
// top-left as the browser reports it, and returns the first surface hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (InspectResult, error) {
	camera := sceneObj.Host(width, height).Camera

	// Screen space has y up from the bottom edge
	origin, direction := camera.PixelRay(float64(pixelX)+0.5, float64(height-pixelY)-0.5)

	hit, ok := sceneObj.Intersect(origin, direction, camera.Far())
	if !ok {
		return InspectResult{Hit: false}, nil
	}

	desc, err := sceneObj.MaterialOf(hit.Surface)
	if err != nil {
		return InspectResult{}, err
	}
	snapshot, err := material.NewCache(sceneObj).Sample(hit.Surface, hit.UV)
	if err != nil {
		return InspectResult{}, err
	}

	return InspectResult{
		Hit:      true,
		Record:   hit,
		Shape:    sceneObj.Shape(hit.Surface),
		Material: desc,
		Snapshot: snapshot,
	}, nil
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3Array(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vec3Array(geom.Corner)
		properties["u"] = vec3Array(geom.U)
		properties["v"] = vec3Array(geom.V)
		properties["normal"] = vec3Array(geom.Normal)
		return "quad", properties

	case *geometry.Plane:
		properties["point"] = vec3Array(geom.Point)
		properties["normal"] = vec3Array(geom.Normal)
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid x coordinate"})
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid y coordinate"})
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	result, err := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, Surface: -1})
		return
	}

	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	response := InspectResponse{
		Hit:          true,
		Surface:      int(result.Record.Surface),
		GeometryType: geometryType,
		Point:        vec3Array(result.Record.Point),
		Normal:       vec3Array(result.Record.Normal),
		UV:           [2]float64{result.Record.UV.X, result.Record.UV.Y},
		Distance:     result.Record.Distance,
		Properties: map[string]interface{}{
			"material": s.extractMaterialInfo(result.Material, result.Snapshot),
			"geometry": geometryProps,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
