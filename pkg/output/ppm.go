// Package output encodes rendered framebuffers into image files.
// Both encoders share the framebuffer's linear-to-8-bit conversion, so
// a PPM and a PNG of the same render contain identical pixel values.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// WritePPM encodes the framebuffer as plain-text PPM (P3): a three-line
// header with dimensions and the 255 maximum, then one "r g b" line per
// pixel in row-major order.
func WritePPM(w io.Writer, fb *core.Framebuffer, gamma float64) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}

	img := fb.ToImage(gamma)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("ppm: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm: flush: %w", err)
	}
	return nil
}
