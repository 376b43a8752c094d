package output

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

// WritePNG encodes the framebuffer as PNG. Pixels go through the same
// gamma, clamp and truncation as the PPM encoder, so the two formats
// agree byte for byte on color values.
func WritePNG(w io.Writer, fb *core.Framebuffer, gamma float64) error {
	dc := gg.NewContext(fb.Width, fb.Height)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).GammaCorrect(gamma).Clamp(0.0, 1.0)
			dc.SetRGB255(int(255*c.X), int(255*c.Y), int(255*c.Z))
			dc.SetPixel(x, y)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("png: encode: %w", err)
	}
	return nil
}
