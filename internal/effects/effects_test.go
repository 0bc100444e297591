package effects

import (
	"image"
	"math"
	"testing"

	"github.com/ivlev/motion2video/internal/renderer"
	"github.com/ivlev/motion2video/internal/timeline"
)

func filled(v uint8) *renderer.Canvas {
	return filledSized(32, 18, v)
}

func filledSized(w, h int, v uint8) *renderer.Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := renderer.NewCanvas(img, nil)
	c.Clear(renderer.RGB(v, v, v))
	return c
}

func frameWith(w timeline.Weights) timeline.Frame {
	return timeline.Frame{Weights: w}
}

func TestFadeEffect(t *testing.T) {
	tests := []struct {
		name    string
		weights timeline.Weights
		want    uint8
	}{
		{"identity", timeline.Weights{Entry: 1, Exit: 1, Open: 1, Close: 1}, 200},
		{"half", timeline.Weights{Entry: 0.5, Exit: 1, Open: 1, Close: 1}, 100},
		{"product", timeline.Weights{Entry: 0.5, Exit: 0.5, Open: 1, Close: 1}, 50},
		{"black", timeline.Weights{Entry: 1, Exit: 1, Open: 0, Close: 1}, 0},
		{"negative clamps", timeline.Weights{Entry: -1, Exit: 1, Open: 1, Close: 1}, 0},
		{"nan clamps", timeline.Weights{Entry: math.NaN(), Exit: 1, Open: 1, Close: 1}, 0},
		{"above one clamps", timeline.Weights{Entry: 2, Exit: 1, Open: 1, Close: 1}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := filled(200)
			(&FadeEffect{}).Apply(c, frameWith(tt.weights))
			px := c.Image().RGBAAt(5, 5)
			if px.R != tt.want || px.G != tt.want || px.B != tt.want {
				t.Errorf("got %v, want channels %d", px, tt.want)
			}
			if px.A != 255 {
				t.Errorf("alpha must stay opaque, got %d", px.A)
			}
		})
	}
}

func TestDebugOverlayDraws(t *testing.T) {
	c := filledSized(640, 360, 0)
	f := timeline.Frame{Weights: timeline.Weights{Entry: 1, Exit: 1, Open: 1, Close: 1}}
	f.Slot.Name = "intro"
	(&DebugOverlay{}).Apply(c, f)

	lit := 0
	pix := c.Image().Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("overlay drew nothing")
	}
}

func TestChainOrder(t *testing.T) {
	c := filled(200)
	half := timeline.Weights{Entry: 0.5, Exit: 1, Open: 1, Close: 1}
	Chain{&FadeEffect{}, &FadeEffect{}}.Apply(c, frameWith(half))
	if got := c.Image().RGBAAt(0, 0).R; got != 50 {
		t.Errorf("two half fades: got %d, want 50", got)
	}
}
