package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

var fileFormats = map[string]bool{"png": true, "jpg": true, "bmp": true, "ppm": true}

// handleRenderFile renders a whole frame and returns it as a single image.
// With upload=1 the image is also stored in the configured S3 bucket.
func (s *Server) handleRenderFile(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if r.URL.Query().Get("maxPasses") == "" {
		req.MaxPasses = 1
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "png"
	}
	if !fileFormats[format] {
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}

	upload := r.URL.Query().Get("upload") == "1"
	if upload && s.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "S3 upload is not configured")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := s.frameConfig(req, sceneObj)
	img, stats, err := renderer.RenderFrame(r.Context(), sceneObj, config, renderer.NewDefaultLogger())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	ext := "." + format
	data, err := output.EncodeBytes(img, ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if upload {
		name := fmt.Sprintf("%s-%d%s", sanitizeKey(req.Scene), time.Now().UnixNano(), ext)
		key, err := s.uploader.Upload(r.Context(), name, data, output.ContentType(ext))
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Upload-Key", key)
	}

	w.Header().Set("Content-Type", output.ContentType(ext))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Ray-Count", fmt.Sprintf("%d", stats.RayCount))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// sanitizeKey turns a scene reference into an object key fragment
func sanitizeKey(ref string) string {
	return strings.NewReplacer(":", "-", "/", "-", "\\", "-", " ", "-").Replace(ref)
}
