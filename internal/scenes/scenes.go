// Package scenes holds the compositions of the clip. Every scene is a pure
// function of the canvas, the absolute time and its local progress; nothing is
// remembered between frames.
package scenes

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ivlev/motion2video/internal/config"
	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/particles"
	"github.com/ivlev/motion2video/internal/renderer"
	"github.com/ivlev/motion2video/internal/timeline"
)

// Scene is a named timeline renderer.
type Scene interface {
	timeline.Renderer
	Name() string
}

// Theme is the read-only input shared by all scenes.
type Theme struct {
	Palette renderer.Palette
	Brand   config.Brand
	Assets  *Assets
}

// DefaultTheme uses the default palette and copy without brand assets.
func DefaultTheme() *Theme {
	return &Theme{
		Palette: renderer.DefaultPalette(),
		Brand:   config.DefaultBrand(),
		Assets:  &Assets{},
	}
}

type factory func(th *Theme) Scene

var registry = map[string]factory{
	"intro":      func(th *Theme) Scene { return &Intro{theme: th} },
	"models":     func(th *Theme) Scene { return &Models{theme: th} },
	"routing":    func(th *Theme) Scene { return &Routing{theme: th} },
	"comparison": func(th *Theme) Scene { return &Comparison{theme: th} },
	"pricing":    func(th *Theme) Scene { return &Pricing{theme: th} },
	"outro":      func(th *Theme) Scene { return &Outro{theme: th} },
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the scene registered under name.
func New(name string, th *Theme) (Scene, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if th == nil {
		th = DefaultTheme()
	}
	return f(th), nil
}

// Build resolves the running order into timeline entries.
func Build(entries []config.SceneEntry, th *Theme) ([]timeline.Scene, error) {
	out := make([]timeline.Scene, 0, len(entries))
	for _, e := range entries {
		sc, err := New(e.Name, th)
		if err != nil {
			return nil, err
		}
		out = append(out, timeline.Scene{Name: sc.Name(), Share: e.Share, Renderer: sc})
	}
	return out, nil
}

// ambient paints the grid and the drifting particles behind a scene.
func ambient(c *renderer.Canvas, pal renderer.Palette, t float64, gridAlpha float64, count int, seed int64) {
	c.GridLines(t, pal.Primary, gridAlpha)
	colors := pal.Ambient()
	for _, p := range particles.Field(c.W(), c.H(), t, count, seed) {
		c.Particle(p.X, p.Y, p.Size, colors[p.Index%len(colors)], p.Alpha)
	}
}

// header draws the title and optional subtitle every content scene opens with.
func header(c *renderer.Canvas, pal renderer.Palette, progress float64, title string, titleY, titleSize float64, sub string, subY, subSize float64) {
	titleP := easing.Stagger(progress, 0, 0.3, easing.OutBack)
	c.TextCentered(title, c.W()/2, titleY, titleSize, true, renderer.AlphaColor(pal.White, titleP))

	if sub == "" {
		return
	}
	subP := easing.Stagger(progress, 0.1, 0.25, easing.InOutCubic)
	c.TextCentered(sub, c.W()/2, subY, subSize, false, renderer.AlphaColor(pal.Gray, subP))
}

// fontSize scales a base size by an animation value and truncates like a
// point-size request.
func fontSize(base, p float64) float64 {
	return math.Trunc(base * p)
}

func floorHalf(v float64) float64 {
	return math.Floor(v / 2)
}
