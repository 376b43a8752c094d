package output

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/NickEvans/go-raytracer/pkg/core"
)

func TestWritePNG_DecodeRoundTrip(t *testing.T) {
	fb := core.NewFramebuffer(3, 2)
	colors := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(0, 0, 0.25),
		core.NewVec3(0.8, 0.7, 0.6),
		core.NewVec3(2.0, -0.5, 1.0), // Clamps to (1, 0, 1)
		core.NewVec3(0, 0, 0),
	}
	for i, c := range colors {
		fb.Set(i%3, i/3, c)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, fb, 1.0); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Expected valid PNG, got decode error %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", decoded.Bounds())
	}

	// The PNG must contain exactly the framebuffer's 8-bit conversion
	reference := fb.ToImage(1.0)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := reference.RGBAAt(x, y)
			r, g, b, _ := decoded.At(x, y).RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				t.Errorf("Pixel (%d,%d): expected %v, got (%d,%d,%d)",
					x, y, want, r>>8, g>>8, b>>8)
			}
		}
	}
}

func TestWritePNG_GammaMatchesPPM(t *testing.T) {
	// Both encoders run the same conversion: the gamma-corrected PNG
	// pixel must equal the value the PPM encoder writes
	fb := core.NewFramebuffer(1, 1)
	fb.Set(0, 0, core.NewVec3(0.25, 0.5, 0.75))

	var pngBuf bytes.Buffer
	if err := WritePNG(&pngBuf, fb, 2.2); err != nil {
		t.Fatalf("Expected PNG write to succeed, got %v", err)
	}
	decoded, err := png.Decode(&pngBuf)
	if err != nil {
		t.Fatalf("Expected valid PNG, got decode error %v", err)
	}

	want := fb.ToImage(2.2).RGBAAt(0, 0)
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("Expected %v, got (%d,%d,%d)", want, r>>8, g>>8, b>>8)
	}
}
