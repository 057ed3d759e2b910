package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// JPEGQuality is used for .jpg and .jpeg output
const JPEGQuality = 95

// Encode writes the image in the format named by ext (".png", ".jpg", ".ppm", ...)
func Encode(w io.Writer, img *renderer.FinalImage, ext string) error {
	ext = strings.ToLower(ext)
	if ext == ".ppm" {
		return WritePPM(w, img)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("unsupported output format %q: %w", ext, err)
	}
	if err := imaging.Encode(w, ToRGBA(img), format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", ext, err)
	}
	return nil
}

// EncodeBytes encodes the image into memory
func EncodeBytes(img *renderer.FinalImage, ext string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, ext); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the image to path, choosing the format from its extension.
// Missing parent directories are created.
func WriteFile(path string, img *renderer.FinalImage) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, img, filepath.Ext(path)); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// DefaultOutputPath returns a timestamped file name in the system temp directory
func DefaultOutputPath(ext string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("raytrace-%d%s", time.Now().UnixNano(), ext))
}

// ContentType returns the MIME type for an output extension
func ContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".ppm":
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}
