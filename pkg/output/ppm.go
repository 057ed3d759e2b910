package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePPM writes the image as a plain-text (P3) PPM
func WritePPM(w io.Writer, img *renderer.FinalImage) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, sum := range img.Pixels {
		c := EncodeColor(sum, img.SamplesPerPixel)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	return bw.Flush()
}
