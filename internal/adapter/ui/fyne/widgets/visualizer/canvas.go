package visualizer

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tejashwikalptaru/spectra/internal/domain"
	"github.com/tejashwikalptaru/spectra/internal/ports"
)

// RasterCanvas draws particles into an *image.RGBA.
//
// Particles are tinted by their horizontal position so neighbouring bars
// share a hue. Glyph particles are drawn with a fixed 7x13 bitmap face.
type RasterCanvas struct {
	img        *image.RGBA
	background color.Color
	draw       DrawingUtils

	glyph  font.Drawer
	ink    *image.Uniform
	runes  [1]rune
	offset fixed.Point26_6
}

// NewRasterCanvas creates a canvas with a transparent background.
func NewRasterCanvas() *RasterCanvas {
	face := basicfont.Face7x13
	ink := image.NewUniform(color.Transparent)
	return &RasterCanvas{
		background: color.Transparent,
		ink:        ink,
		glyph: font.Drawer{
			Src:  ink,
			Face: face,
		},
		// Centre the glyph on the particle position.
		offset: fixed.P(-face.Advance/2, (face.Ascent-face.Descent)/2),
	}
}

// SetBackground sets the color used by Clear.
func (c *RasterCanvas) SetBackground(col color.Color) {
	c.background = col
}

// Begin points the canvas at the image of the next frame.
func (c *RasterCanvas) Begin(img *image.RGBA) {
	c.img = img
	c.glyph.Dst = img
}

// Image returns the image the canvas currently draws into.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Clear implements ports.Canvas.
func (c *RasterCanvas) Clear() {
	if c.img == nil {
		return
	}
	c.draw.FillBackground(c.img, c.background)
}

// DrawParticle implements ports.Canvas.
func (c *RasterCanvas) DrawParticle(p domain.Particle) {
	if c.img == nil || !p.Visible() {
		return
	}

	col := c.colorAt(p.X)
	if p.Character != 0 {
		c.drawGlyph(p, col)
		return
	}
	c.draw.DrawFilledCircle(c.img, int(p.X), int(p.Y), float64(p.Size), col, p.Alpha)
}

func (c *RasterCanvas) drawGlyph(p domain.Particle, col color.RGBA) {
	a := min(p.Alpha, 1)
	c.ink.C = color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(a * 255)}
	c.glyph.Dot = fixed.P(int(p.X), int(p.Y)).Add(c.offset)
	c.runes[0] = p.Character
	c.glyph.DrawString(string(c.runes[:]))
}

func (c *RasterCanvas) colorAt(x float32) color.RGBA {
	w := c.img.Bounds().Dx()
	if w <= 0 {
		return c.draw.HueColor(0)
	}
	h := float64(x) / float64(w)
	return c.draw.HueColor(min(max(h, 0), 1) * 0.8)
}

// Verify interface implementation at compile time.
var _ ports.Canvas = (*RasterCanvas)(nil)
