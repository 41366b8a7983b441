package visualizer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// DrawingUtils provides common drawing operations.
type DrawingUtils struct{}

// FillBackground fills the image with a solid color.
func (DrawingUtils) FillBackground(img *image.RGBA, col color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// BlendPixel composites col with the given opacity over the pixel at (x, y).
// Pixels outside the image are ignored.
func (DrawingUtils) BlendPixel(img *image.RGBA, x, y int, col color.RGBA, alpha float32) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) || alpha <= 0 {
		return
	}
	alpha = min(alpha, 1)

	i := img.PixOffset(x, y)
	px := img.Pix[i : i+4 : i+4]
	inv := 1 - alpha
	px[0] = uint8(float32(col.R)*alpha + float32(px[0])*inv)
	px[1] = uint8(float32(col.G)*alpha + float32(px[1])*inv)
	px[2] = uint8(float32(col.B)*alpha + float32(px[2])*inv)
	px[3] = uint8(255*alpha + float32(px[3])*inv)
}

// DrawFilledCircle draws a filled circle blended over the image.
func (d DrawingUtils) DrawFilledCircle(img *image.RGBA, cx, cy int, radius float64, col color.RGBA, alpha float32) {
	r := int(math.Ceil(radius))
	r2 := radius * radius
	if r == 0 {
		d.BlendPixel(img, cx, cy, col, alpha)
		return
	}

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				d.BlendPixel(img, cx+dx, cy+dy, col, alpha)
			}
		}
	}
}

// FillRect fills the half-open rectangle r with an opaque color.
func (DrawingUtils) FillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// GetGradientColor maps pos in [0, 1] onto red, yellow, green from bottom to top.
func (DrawingUtils) GetGradientColor(pos float64) color.RGBA {
	pos = min(max(pos, 0), 1)

	// Red channel holds until the midpoint, green ramps up to it
	red := min(2-2*pos, 1)
	green := min(2*pos, 1)
	return color.RGBA{R: uint8(red * 255), G: uint8(green * 255), A: 255}
}

// HueColor returns a saturated opaque color for hue h in [0, 1].
func (DrawingUtils) HueColor(h float64) color.RGBA {
	r, g, b := HSLToRGB(h, 0.85, 0.6)
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// HSLToRGB converts HSL to RGB; all values are in [0, 1].
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	a := s * min(l, 1-l)
	channel := func(n float64) float64 {
		k := math.Mod(n+h*12, 12)
		return l - a*max(-1, min(k-3, 9-k, 1))
	}
	return channel(0), channel(8), channel(4)
}
