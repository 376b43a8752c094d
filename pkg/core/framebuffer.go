package core

import (
	"image"
	"image/color"
)

// Framebuffer accumulates linear RGB values for a full image.
// Pixels are stored row-major, top row first. Values are kept
// unclamped until conversion so bright lights can exceed 1.0
// during shading without losing energy in intermediate blends.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []Vec3
}

// NewFramebuffer creates a zeroed framebuffer of the given size
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Vec3, width*height),
	}
}

// Set stores the color at (x, y). Callers own bounds checking.
func (f *Framebuffer) Set(x, y int, c Vec3) {
	f.Pix[y*f.Width+x] = c
}

// At returns the color at (x, y)
func (f *Framebuffer) At(x, y int) Vec3 {
	return f.Pix[y*f.Width+x]
}

// SetRegion copies a rectangular block of pixels into the buffer.
// pix is row-major within bounds and must have bounds.Dx()*bounds.Dy()
// entries. Tiles rendered by different workers cover disjoint bounds,
// so concurrent SetRegion calls need no locking.
func (f *Framebuffer) SetRegion(bounds image.Rectangle, pix []Vec3) {
	w := bounds.Dx()
	for row := 0; row < bounds.Dy(); row++ {
		dst := (bounds.Min.Y+row)*f.Width + bounds.Min.X
		src := row * w
		copy(f.Pix[dst:dst+w], pix[src:src+w])
	}
}

// ToImage converts the buffer to an 8-bit RGBA image. This is the one
// point where colors are gamma corrected, clamped to [0,1] and scaled
// to 0..255; accumulation stays linear everywhere else.
func (f *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y).GammaCorrect(gamma).Clamp(0.0, 1.0)
			img.Set(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
