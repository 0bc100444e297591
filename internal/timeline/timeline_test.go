package timeline

import (
	"math"
	"testing"

	"github.com/ivlev/motion2video/internal/renderer"
)

type nopRenderer struct{}

func (nopRenderer) Render(*renderer.Canvas, float64, float64) {}

func sixScenes() []Scene {
	names := []string{"intro", "models", "routing", "comparison", "pricing", "outro"}
	scenes := make([]Scene, len(names))
	for i, n := range names {
		scenes[i] = Scene{Name: n, Share: 1, Renderer: nopRenderer{}}
	}
	return scenes
}

func newStandard(t *testing.T) *Timeline {
	t.Helper()
	tl, err := New(24, sixScenes(), DefaultFades())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tl
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		scenes   []Scene
		fades    Fades
		wantErr  bool
	}{
		{"ok", 24, sixScenes(), DefaultFades(), false},
		{"zero duration", 0, sixScenes(), DefaultFades(), true},
		{"nan duration", math.NaN(), sixScenes(), DefaultFades(), true},
		{"no scenes", 24, nil, DefaultFades(), true},
		{"bad share", 24, []Scene{{Name: "a", Share: 0}}, DefaultFades(), true},
		{"negative fade", 24, sixScenes(), Fades{Scene: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.duration, tt.scenes, tt.fades)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSlotsPartitionDuration(t *testing.T) {
	tl := newStandard(t)
	if tl.Slots[0].Start != 0 {
		t.Errorf("first slot starts at %v", tl.Slots[0].Start)
	}
	for i := 1; i < len(tl.Slots); i++ {
		if tl.Slots[i].Start != tl.Slots[i-1].End {
			t.Errorf("gap between slot %d and %d", i-1, i)
		}
	}
	if last := tl.Slots[len(tl.Slots)-1]; last.End != 24 {
		t.Errorf("last slot ends at %v", last.End)
	}
}

func TestPartitionInvariant(t *testing.T) {
	tl := newStandard(t)
	for f := 0; f < 24*30; f++ {
		ts := float64(f) / 30
		pos := tl.Resolve(ts)
		if pos.Index() < 0 || pos.Index() >= 6 {
			t.Fatalf("t=%v: index %d out of range", ts, pos.Index())
		}
		if pos.Progress < 0 || pos.Progress >= 1 {
			t.Fatalf("t=%v: progress %v outside [0,1)", ts, pos.Progress)
		}
		want := int(math.Floor(ts / 4))
		if pos.Index() != want {
			t.Fatalf("t=%v: index %d, want %d", ts, pos.Index(), want)
		}
	}
}

func TestBoundaryBelongsToNewScene(t *testing.T) {
	tl := newStandard(t)
	for i := 1; i < 6; i++ {
		pos := tl.Resolve(float64(i) * 4)
		if pos.Index() != i {
			t.Errorf("boundary %d resolved to scene %d", i, pos.Index())
		}
		if pos.Progress != 0 {
			t.Errorf("boundary %d: progress %v, want 0", i, pos.Progress)
		}
	}
}

func TestOutOfRangeClamps(t *testing.T) {
	tl := newStandard(t)

	if pos := tl.Resolve(24); pos.Index() != 5 {
		t.Errorf("t=DURATION: index %d, want 5", pos.Index())
	}
	if pos := tl.Resolve(100); pos.Index() != 5 || pos.Progress != 1 {
		t.Errorf("t=100: index %d progress %v", pos.Index(), pos.Progress)
	}
	if pos := tl.Resolve(-3); pos.Index() != 0 || pos.Progress != 0 {
		t.Errorf("t=-3: index %d progress %v", pos.Index(), pos.Progress)
	}
}

func TestMidTimelineScenario(t *testing.T) {
	tl := newStandard(t)

	// middle of the third scene
	f := tl.At(10)
	if f.Index() != 2 {
		t.Errorf("index %d, want 2", f.Index())
	}
	if math.Abs(f.Progress-0.5) > 1e-9 {
		t.Errorf("progress %v, want 0.5", f.Progress)
	}
	if f.Weights.Combined() != 1 {
		t.Errorf("weights %+v, want all 1", f.Weights)
	}

	// DURATION/2 sits exactly on the 3|4 boundary
	mid := tl.At(12)
	if mid.Index() != 3 || mid.Progress != 0 {
		t.Errorf("t=12: index %d progress %v", mid.Index(), mid.Progress)
	}
	if mid.Weights.Entry != 0 {
		t.Errorf("t=12: entry weight %v, want 0", mid.Weights.Entry)
	}
}

func TestGlobalFades(t *testing.T) {
	tl := newStandard(t)

	if w := tl.Weights(0); w.Combined() != 0 {
		t.Errorf("t=0: combined %v, want 0", w.Combined())
	}
	if w := tl.Weights(0.4); math.Abs(w.Open-0.5) > 1e-9 {
		t.Errorf("t=0.4: open %v, want 0.5", w.Open)
	}
	if w := tl.Weights(1.0); w.Open != 1 {
		t.Errorf("t=1: open %v", w.Open)
	}

	end := tl.Weights(24 - 0.1)
	if end.Close >= 1 || end.Close <= 0 {
		t.Errorf("t=23.9: close %v, want in (0,1)", end.Close)
	}
	if end.Exit != 1 {
		t.Errorf("last scene must not exit-fade, got %v", end.Exit)
	}
}

func TestSceneBoundaryFades(t *testing.T) {
	tl := newStandard(t)

	tests := []struct {
		t           float64
		entry, exit float64
	}{
		{2.0, 1, 1},
		{3.75, 1, 0.5},
		{4.0, 0, 1},
		{4.25, 0.5, 1},
		{4.5, 1, 1},
		{0.2, 1, 1}, // first scene never entry-fades
	}

	for _, tt := range tests {
		w := tl.Weights(tt.t)
		if math.Abs(w.Entry-tt.entry) > 1e-9 || math.Abs(w.Exit-tt.exit) > 1e-9 {
			t.Errorf("t=%v: entry %v exit %v, want %v %v", tt.t, w.Entry, w.Exit, tt.entry, tt.exit)
		}
	}
}

func TestBoundaryContinuity(t *testing.T) {
	tl := newStandard(t)
	const eps = 1e-6
	for i := 1; i < 6; i++ {
		b := float64(i) * 4
		before := tl.Weights(b - eps).Combined()
		after := tl.Weights(b + eps).Combined()
		if before > 1e-6 || after > 1e-6 {
			t.Errorf("boundary %v: weights %v / %v should both approach 0", b, before, after)
		}
	}
}

func TestWeightsInUnitRange(t *testing.T) {
	tl := newStandard(t)
	for f := -10; f <= 24*30+10; f++ {
		w := tl.Weights(float64(f) / 30)
		for _, v := range []float64{w.Entry, w.Exit, w.Open, w.Close} {
			if v < 0 || v > 1 {
				t.Fatalf("frame %d: weight %v outside [0,1]", f, v)
			}
		}
	}
}

func TestUnequalShares(t *testing.T) {
	scenes := []Scene{
		{Name: "a", Share: 1},
		{Name: "b", Share: 3},
	}
	tl, err := New(8, scenes, Fades{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tl.Slots[1].Start != 2 {
		t.Errorf("slot b starts at %v, want 2", tl.Slots[1].Start)
	}
	if pos := tl.Resolve(5); pos.Index() != 1 || math.Abs(pos.Progress-0.5) > 1e-9 {
		t.Errorf("t=5: index %d progress %v", pos.Index(), pos.Progress)
	}
	if w := tl.Weights(2); w.Combined() != 1 {
		t.Errorf("no fades configured, got %+v", w)
	}
}
