package renderer

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Reference layout size. Scenes are authored in this coordinate space and the
// canvas scales it uniformly onto the real raster.
const (
	RefWidth  = 1920
	RefHeight = 1080
)

type faceKey struct {
	bold bool
	size int
}

// Canvas is the drawing surface handed to scene renderers for a single frame.
// It is not safe for concurrent use; create one per frame.
type Canvas struct {
	img   *image.RGBA
	dc    *gg.Context
	fonts *FontBook
	faces map[faceKey]font.Face
	scale float64
}

// NewCanvas wraps img. Drawing operations write into img directly.
func NewCanvas(img *image.RGBA, fonts *FontBook) *Canvas {
	b := img.Bounds()
	scale := math.Min(float64(b.Dx())/RefWidth, float64(b.Dy())/RefHeight)
	if scale <= 0 {
		scale = 1
	}
	if fonts == nil {
		fonts = DefaultFontBook()
	}
	return &Canvas{
		img:   img,
		dc:    gg.NewContextForRGBA(img),
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
		scale: scale,
	}
}

// W is the canvas width in layout units.
func (c *Canvas) W() float64 {
	return float64(c.img.Bounds().Dx()) / c.scale
}

// H is the canvas height in layout units.
func (c *Canvas) H() float64 {
	return float64(c.img.Bounds().Dy()) / c.scale
}

// Scale is the number of pixels per layout unit.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Image returns the underlying raster.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// finite reports whether every value is a real number. The rasterizer
// never returns on NaN or infinite path points.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c *Canvas) px(v float64) float64 {
	return v * c.scale
}

// Clear fills the whole raster with col.
func (c *Canvas) Clear(col Color) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 0xff
	}
}

// GradientBackground paints a vertical gradient from top to low that slowly
// breathes with t.
func (c *Canvas) GradientBackground(t float64, top, low Color) {
	b := c.img.Bounds()
	h := float64(b.Dy())
	shift := math.Sin(t*0.3) * 0.1
	for y := 0; y < b.Dy(); y++ {
		col := LerpColor(top, low, float64(y)/h+shift)
		row := c.img.Pix[y*c.img.Stride : y*c.img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			row[i] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = 0xff
		}
	}
}

// Line strokes a segment. Non-positive widths are skipped.
func (c *Canvas) Line(x1, y1, x2, y2 float64, col Color, width float64) {
	if width <= 0 || !finite(x1, y1, x2, y2, width) {
		return
	}
	c.dc.SetColor(col.RGBA())
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawLine(c.px(x1), c.px(y1), c.px(x2), c.px(y2))
	c.dc.Stroke()
}

// FillCircle paints a disc. Radii of zero or less and non-finite
// coordinates are skipped.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if !(r > 0) || !finite(cx, cy, r) {
		return
	}
	c.dc.SetColor(col.RGBA())
	c.dc.DrawCircle(c.px(cx), c.px(cy), c.px(r))
	c.dc.Fill()
}

// StrokeCircle paints a ring outline of the given width.
func (c *Canvas) StrokeCircle(cx, cy, r float64, col Color, width float64) {
	if !(r > 0) || width <= 0 || !finite(cx, cy, r, width) {
		return
	}
	c.dc.SetColor(col.RGBA())
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawCircle(c.px(cx), c.px(cy), c.px(r))
	c.dc.Stroke()
}

// Disc paints a filled circle with an outline on top.
func (c *Canvas) Disc(cx, cy, r float64, fill, outline Color, width float64) {
	c.FillCircle(cx, cy, r, fill)
	c.StrokeCircle(cx, cy, r, outline, width)
}

// GlowingCircle draws a ring with fading halo rings around it.
func (c *Canvas) GlowingCircle(cx, cy, r float64, col Color, thickness float64, glowLayers int) {
	for i := glowLayers; i > 0; i-- {
		gr := r + float64(i)*4
		c.StrokeCircle(cx, cy, gr, AlphaColor(col, 0.15/float64(i)), thickness+float64(i))
	}
	c.StrokeCircle(cx, cy, r, col, thickness)
}

// Particle draws a small dot at the given fake opacity.
func (c *Canvas) Particle(x, y, size float64, col Color, alpha float64) {
	c.FillCircle(x, y, size, AlphaColor(col, alpha))
}

// GridLines draws a slowly scrolling grid.
func (c *Canvas) GridLines(t float64, base Color, alpha float64) {
	const spacing = 80.0
	col := AlphaColor(base, alpha)
	offset := math.Mod(t*20, spacing)
	w, h := c.W(), c.H()
	for x := 0.0; x < w+spacing; x += spacing {
		c.Line(x+offset, 0, x+offset, h, col, 1)
	}
	for y := 0.0; y < h+spacing; y += spacing {
		c.Line(0, y+offset*0.5, w, y+offset*0.5, col, 1)
	}
}

// roundedPath normalizes the corner radius; it reports false for empty boxes.
func roundedPath(x1, y1, x2, y2, radius float64) (float64, bool) {
	if x2 <= x1 || y2 <= y1 || !finite(x1, y1, x2, y2, radius) {
		return 0, false
	}
	if x2-x1 < 2*radius || y2-y1 < 2*radius {
		radius = math.Max(0, math.Min(math.Floor((x2-x1)/2), math.Floor((y2-y1)/2)))
	}
	return radius, true
}

// FillRoundedRect paints a filled rectangle with rounded corners.
func (c *Canvas) FillRoundedRect(x1, y1, x2, y2, radius float64, col Color) {
	radius, ok := roundedPath(x1, y1, x2, y2, radius)
	if !ok {
		return
	}
	c.dc.SetColor(col.RGBA())
	c.dc.DrawRoundedRectangle(c.px(x1), c.px(y1), c.px(x2-x1), c.px(y2-y1), c.px(radius))
	c.dc.Fill()
}

// StrokeRoundedRect outlines a rectangle with rounded corners.
func (c *Canvas) StrokeRoundedRect(x1, y1, x2, y2, radius float64, col Color, width float64) {
	radius, ok := roundedPath(x1, y1, x2, y2, radius)
	if !ok || width <= 0 {
		return
	}
	c.dc.SetColor(col.RGBA())
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawRoundedRectangle(c.px(x1), c.px(y1), c.px(x2-x1), c.px(y2-y1), c.px(radius))
	c.dc.Stroke()
}

// Card is FillRoundedRect followed by StrokeRoundedRect.
func (c *Canvas) Card(x1, y1, x2, y2, radius float64, fill, outline Color, width float64) {
	c.FillRoundedRect(x1, y1, x2, y2, radius, fill)
	c.StrokeRoundedRect(x1, y1, x2, y2, radius, outline, width)
}

func (c *Canvas) face(bold bool, size float64) (font.Face, bool) {
	px := c.px(size)
	if !(px >= 1) || math.IsInf(px, 1) {
		return nil, false
	}
	key := faceKey{bold: bold, size: int(math.Round(px * 4))}
	f, ok := c.faces[key]
	if !ok {
		f = c.fonts.Face(bold, float64(key.size)/4)
		c.faces[key] = f
	}
	return f, true
}

// MeasureText returns the text extent in layout units.
func (c *Canvas) MeasureText(text string, size float64, bold bool) (float64, float64) {
	f, ok := c.face(bold, size)
	if !ok {
		return 0, 0
	}
	c.dc.SetFontFace(f)
	w, h := c.dc.MeasureString(text)
	return w / c.scale, h / c.scale
}

// TextCentered draws text centered on (cx, cy). Sizes below one pixel are skipped.
func (c *Canvas) TextCentered(text string, cx, cy, size float64, bold bool, col Color) {
	c.textAnchored(text, cx, cy, size, bold, col, 0.5, 0.5)
}

// Text draws text with its top-left corner at (x, y).
func (c *Canvas) Text(text string, x, y, size float64, bold bool, col Color) {
	c.textAnchored(text, x, y, size, bold, col, 0, 1)
}

func (c *Canvas) textAnchored(text string, x, y, size float64, bold bool, col Color, ax, ay float64) {
	if text == "" || !finite(x, y, size) {
		return
	}
	f, ok := c.face(bold, size)
	if !ok {
		return
	}
	c.dc.SetFontFace(f)
	c.dc.SetColor(col.RGBA())
	c.dc.DrawStringAnchored(text, c.px(x), c.px(y), ax, ay)
}

// ImageCentered scales src into a w x h box centered on (cx, cy) and
// multiplies it by alpha (fake opacity, like AlphaColor).
func (c *Canvas) ImageCentered(src image.Image, cx, cy, w, h, alpha float64) {
	if src == nil || alpha <= 0 || !finite(cx, cy, w, h) {
		return
	}
	pw, ph := int(c.px(w)), int(c.px(h))
	if pw <= 1 || ph <= 1 {
		return
	}
	x0 := int(c.px(cx)) - pw/2
	y0 := int(c.px(cy)) - ph/2
	dst := image.Rect(x0, y0, x0+pw, y0+ph).Intersect(c.img.Bounds())
	if dst.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, pw, ph))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			si := scaled.PixOffset(x-x0, y-y0)
			a := float64(scaled.Pix[si+3]) / 255 * math.Min(alpha, 1)
			if a <= 0 {
				continue
			}
			di := c.img.PixOffset(x, y)
			for k := 0; k < 3; k++ {
				// scaled is premultiplied
				v := float64(scaled.Pix[si+k])*math.Min(alpha, 1) + float64(c.img.Pix[di+k])*(1-a)
				c.img.Pix[di+k] = saturate(v)
			}
		}
	}
}

// QR paints a square module matrix of the given layout size centered on
// (cx, cy). Dark modules use fg, light modules bg.
func (c *Canvas) QR(modules [][]bool, cx, cy, size float64, fg, bg Color) {
	n := len(modules)
	if n == 0 || c.px(size) < float64(n) {
		return
	}
	cell := size / float64(n)
	x0, y0 := cx-size/2, cy-size/2
	c.dc.SetColor(bg.RGBA())
	c.dc.DrawRectangle(c.px(x0), c.px(y0), c.px(size), c.px(size))
	c.dc.Fill()

	c.dc.SetColor(fg.RGBA())
	for row, line := range modules {
		for col, dark := range line {
			if !dark {
				continue
			}
			c.dc.DrawRectangle(c.px(x0+float64(col)*cell), c.px(y0+float64(row)*cell), c.px(cell)+0.5, c.px(cell)+0.5)
		}
	}
	c.dc.Fill()
}
