// Package effects holds the post-processing stages the compositor applies to
// a finished scene raster.
package effects

import (
	"fmt"
	"math"

	"github.com/ivlev/motion2video/internal/renderer"
	"github.com/ivlev/motion2video/internal/timeline"
)

type Effect interface {
	Apply(c *renderer.Canvas, f timeline.Frame)
}

// FadeEffect scales every channel toward black by the combined fade weight.
// The weight is clamped once; the alpha channel stays opaque.
type FadeEffect struct{}

func (e *FadeEffect) Apply(c *renderer.Canvas, f timeline.Frame) {
	w := f.Weights.Combined()
	if math.IsNaN(w) || w < 0 {
		w = 0
	}
	if w >= 1 {
		return
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = uint8(float64(v) * w)
	}

	img := c.Image()
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			row[i] = lut[row[i]]
			row[i+1] = lut[row[i+1]]
			row[i+2] = lut[row[i+2]]
		}
	}
}

// DebugOverlay prints the scene, time and fade state in the top-left corner.
type DebugOverlay struct {
	Color renderer.Color
}

func (e *DebugOverlay) Apply(c *renderer.Canvas, f timeline.Frame) {
	col := e.Color
	if col == (renderer.Color{}) {
		col = renderer.RGB(255, 255, 0)
	}
	w := f.Weights
	lines := []string{
		fmt.Sprintf("t=%.3fs  scene %d/%s  p=%.3f", f.Time, f.Index(), f.Slot.Name, f.Progress),
		fmt.Sprintf("entry=%.2f exit=%.2f open=%.2f close=%.2f", w.Entry, w.Exit, w.Open, w.Close),
	}
	for i, line := range lines {
		c.Text(line, 24, 24+float64(i)*30, 22, false, col)
	}
}

// Chain applies effects in order.
type Chain []Effect

func (ch Chain) Apply(c *renderer.Canvas, f timeline.Frame) {
	for _, e := range ch {
		e.Apply(c, f)
	}
}
