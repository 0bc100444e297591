package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Renderer paints one scene onto a canvas. t is the absolute clip time and
// progress the scene-local progress in [0, 1).
type Renderer interface {
	Render(c *renderer.Canvas, t, progress float64)
}

// Scene is an entry of the running order. Share is the relative length of the
// scene; equal shares split the clip evenly.
type Scene struct {
	Name     string
	Share    float64
	Renderer Renderer
}

// Slot is a scene placed on the clip: it owns the half-open interval [Start, End).
type Slot struct {
	Index      int
	Name       string
	Start, End float64
	Renderer   Renderer
}

// Duration of the slot in seconds.
func (s Slot) Duration() float64 {
	return s.End - s.Start
}

// Fades holds the cross-fade lengths in seconds.
type Fades struct {
	Scene float64 // at boundaries between adjacent scenes
	Open  float64 // at the start of the clip
	Close float64 // at the end of the clip
}

// DefaultFades matches the standard clip: 0.5s between scenes, 0.8s in, 1.5s out.
func DefaultFades() Fades {
	return Fades{Scene: 0.5, Open: 0.8, Close: 1.5}
}

// Timeline partitions [0, Duration) into contiguous scene slots.
type Timeline struct {
	Duration float64
	Fades    Fades
	Slots    []Slot
}

// New lays the scenes out over duration seconds.
func New(duration float64, scenes []Scene, fades Fades) (*Timeline, error) {
	if !(duration > 0) {
		return nil, fmt.Errorf("timeline duration must be positive, got %v", duration)
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("timeline needs at least one scene")
	}
	if fades.Scene < 0 || fades.Open < 0 || fades.Close < 0 {
		return nil, fmt.Errorf("fade durations must not be negative: %+v", fades)
	}

	total := 0.0
	equal := true
	for i, sc := range scenes {
		if !(sc.Share > 0) {
			return nil, fmt.Errorf("scene %d (%s): share must be positive, got %v", i, sc.Name, sc.Share)
		}
		if sc.Share != scenes[0].Share {
			equal = false
		}
		total += sc.Share
	}

	n := len(scenes)
	slots := make([]Slot, n)
	sceneDur := duration / float64(n)
	cum := 0.0
	for i, sc := range scenes {
		start := float64(i) * sceneDur
		if !equal {
			start = duration * cum / total
		}
		cum += sc.Share
		slots[i] = Slot{Index: i, Name: sc.Name, Start: start, Renderer: sc.Renderer}
	}
	for i := range slots {
		if i+1 < n {
			slots[i].End = slots[i+1].Start
		} else {
			slots[i].End = duration
		}
		if slots[i].Duration() <= 0 {
			return nil, fmt.Errorf("scene %d (%s) has zero length", i, slots[i].Name)
		}
	}

	return &Timeline{Duration: duration, Fades: fades, Slots: slots}, nil
}

// Position is the resolved state of the clip at a timestamp.
type Position struct {
	Time      float64
	Slot      Slot
	Local     float64 // seconds since the slot start
	Remaining float64 // seconds until the slot end
	Progress  float64 // Local / slot duration, in [0, 1)
}

// Index of the active scene.
func (p Position) Index() int {
	return p.Slot.Index
}

// Resolve finds the active scene at t. Boundaries belong to the later scene;
// out-of-range timestamps clamp to the first or last scene.
func (tl *Timeline) Resolve(t float64) Position {
	n := len(tl.Slots)
	idx := sort.Search(n, func(i int) bool { return tl.Slots[i].Start > t }) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	slot := tl.Slots[idx]
	local := t - slot.Start
	progress := local / slot.Duration()
	if math.IsNaN(progress) || progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return Position{
		Time:      t,
		Slot:      slot,
		Local:     local,
		Remaining: slot.End - t,
		Progress:  progress,
	}
}

// Weights are the brightness multipliers active at a timestamp. Each lies in [0, 1].
type Weights struct {
	Entry float64
	Exit  float64
	Open  float64
	Close float64
}

// Global is the clip-edge part of the weighting.
func (w Weights) Global() float64 {
	return w.Open * w.Close
}

// Combined is the single factor applied to the raster.
func (w Weights) Combined() float64 {
	return w.Entry * w.Exit * w.Global()
}

// Weights computes the scene-boundary and clip-edge fades at t.
func (tl *Timeline) Weights(t float64) Weights {
	return tl.weightsAt(tl.Resolve(t))
}

func (tl *Timeline) weightsAt(pos Position) Weights {
	w := Weights{Entry: 1, Exit: 1, Open: 1, Close: 1}
	last := len(tl.Slots) - 1
	f := tl.Fades

	if f.Scene > 0 {
		if pos.Index() > 0 && pos.Local < f.Scene {
			w.Entry = ramp(pos.Local, f.Scene)
		}
		if pos.Index() < last && pos.Remaining < f.Scene {
			w.Exit = ramp(pos.Remaining, f.Scene)
		}
	}
	if f.Open > 0 && pos.Time < f.Open {
		w.Open = ramp(pos.Time, f.Open)
	}
	if f.Close > 0 && pos.Time > tl.Duration-f.Close {
		w.Close = ramp(tl.Duration-pos.Time, f.Close)
	}
	return w
}

// Frame bundles the position and weights of a timestamp.
type Frame struct {
	Position
	Weights Weights
}

// At resolves position and weights in one pass.
func (tl *Timeline) At(t float64) Frame {
	pos := tl.Resolve(t)
	return Frame{Position: pos, Weights: tl.weightsAt(pos)}
}

func ramp(elapsed, length float64) float64 {
	return easing.InOutCubic(easing.Clamp01(elapsed / length))
}
