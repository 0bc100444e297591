// Package compositor turns a timestamp into a finished frame: background,
// active scene, then the post-processing chain.
package compositor

import (
	"fmt"
	"image"
	"math"

	"github.com/ivlev/motion2video/internal/config"
	"github.com/ivlev/motion2video/internal/effects"
	"github.com/ivlev/motion2video/internal/renderer"
	"github.com/ivlev/motion2video/internal/scenes"
	"github.com/ivlev/motion2video/internal/timeline"
)

// Compositor is read-only after New and safe for concurrent use: every call
// draws through its own canvas.
type Compositor struct {
	Timeline *timeline.Timeline
	Palette  renderer.Palette
	Fonts    *renderer.FontBook
	Effects  effects.Chain

	width, height int
}

// New builds the timeline from cfg. A nil theme is derived from the palette
// and brand of cfg; nil fonts fall back to the built-in faces.
func New(cfg *config.Config, th *scenes.Theme, fonts *renderer.FontBook) (*Compositor, error) {
	if th == nil {
		th = &scenes.Theme{Palette: cfg.Palette, Brand: cfg.Brand, Assets: &scenes.Assets{}}
	}
	if fonts == nil {
		fonts = renderer.DefaultFontBook()
	}

	entries, err := scenes.Build(cfg.Scenes, th)
	if err != nil {
		return nil, err
	}
	tl, err := timeline.New(cfg.TotalDuration, entries, timeline.Fades{
		Scene: cfg.FadeDuration,
		Open:  cfg.OpenFade,
		Close: cfg.CloseFade,
	})
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	chain := effects.Chain{&effects.FadeEffect{}}
	if cfg.Debug {
		chain = append(chain, &effects.DebugOverlay{})
	}

	return &Compositor{
		Timeline: tl,
		Palette:  th.Palette,
		Fonts:    fonts,
		Effects:  chain,
		width:    cfg.Width,
		height:   cfg.Height,
	}, nil
}

// Bounds of the frames produced by Render.
func (c *Compositor) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Render allocates and draws the frame at t.
func (c *Compositor) Render(t float64) *image.RGBA {
	dst := image.NewRGBA(c.Bounds())
	c.RenderInto(dst, t)
	return dst
}

// RenderInto draws the frame at t over the whole of dst, which may be a
// reused buffer of any size. It returns the resolved timeline state.
func (c *Compositor) RenderInto(dst *image.RGBA, t float64) timeline.Frame {
	t = c.finite(t)
	canvas := renderer.NewCanvas(dst, c.Fonts)
	canvas.GradientBackground(t, c.Palette.GradientTop, c.Palette.GradientLow)

	f := c.Timeline.At(t)
	if r := f.Slot.Renderer; r != nil {
		r.Render(canvas, t, f.Progress)
	}
	c.Effects.Apply(canvas, f)
	return f
}

// finite maps NaN to 0 and infinities to the clip edges. Finite values
// outside the clip pass through: the timeline clamps them itself.
func (c *Compositor) finite(t float64) float64 {
	switch {
	case math.IsNaN(t), math.IsInf(t, -1):
		return 0
	case math.IsInf(t, 1):
		return math.Nextafter(c.Timeline.Duration, 0)
	}
	return t
}
