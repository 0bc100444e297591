package easing

import (
	"math"
	"testing"
)

func TestBoundaryValues(t *testing.T) {
	tests := []struct {
		name string
		fn   Func
	}{
		{"linear", Linear},
		{"in_out_cubic", InOutCubic},
		{"out_back", OutBack},
		{"out_elastic", OutElastic},
		{"out_quart", OutQuart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(0); math.Abs(got) > 1e-12 || math.IsNaN(got) {
				t.Errorf("%s(0) = %v, want 0", tt.name, got)
			}
			if got := tt.fn(1); math.Abs(got-1) > 1e-12 || math.IsNaN(got) {
				t.Errorf("%s(1) = %v, want 1", tt.name, got)
			}
		})
	}
}

func TestElasticEndpointsExact(t *testing.T) {
	if OutElastic(0) != 0 {
		t.Errorf("OutElastic(0) = %v", OutElastic(0))
	}
	if OutElastic(1) != 1 {
		t.Errorf("OutElastic(1) = %v", OutElastic(1))
	}
}

func TestInOutCubicMonotonic(t *testing.T) {
	prev := InOutCubic(0)
	for i := 1; i <= 1000; i++ {
		v := InOutCubic(float64(i) / 1000)
		if v < prev {
			t.Fatalf("not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
	if got := InOutCubic(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("InOutCubic(0.5) = %v, want 0.5", got)
	}
}

func TestOvershoot(t *testing.T) {
	maxBack := 0.0
	for i := 0; i <= 100; i++ {
		maxBack = math.Max(maxBack, OutBack(float64(i)/100))
	}
	if maxBack <= 1 {
		t.Errorf("OutBack should overshoot 1.0, max %v", maxBack)
	}

	maxElastic := 0.0
	for i := 0; i <= 100; i++ {
		maxElastic = math.Max(maxElastic, OutElastic(float64(i)/100))
	}
	if maxElastic <= 1 {
		t.Errorf("OutElastic should overshoot 1.0, max %v", maxElastic)
	}
}

func TestOutQuartMonotonic(t *testing.T) {
	prev := OutQuart(0)
	for i := 1; i <= 100; i++ {
		v := OutQuart(float64(i) / 100)
		if v < prev {
			t.Fatalf("not monotonic at %d", i)
		}
		prev = v
	}
}

func TestDefinedOutsideUnitRange(t *testing.T) {
	for _, fn := range []Func{InOutCubic, OutBack, OutElastic, OutQuart} {
		for _, x := range []float64{-2, -0.5, 1.5, 3} {
			if math.IsNaN(fn(x)) || math.IsInf(fn(x), 0) {
				t.Errorf("easing returned %v for %v", fn(x), x)
			}
		}
	}
}

func TestStagger(t *testing.T) {
	tests := []struct {
		progress, delay, ramp float64
		want                  float64
	}{
		{0.0, 0.2, 0.4, 0},
		{0.2, 0.2, 0.4, 0},
		{0.4, 0.2, 0.4, 0.5},
		{0.6, 0.2, 0.4, 1},
		{0.9, 0.2, 0.4, 1},
		{0.5, 0.5, 0, 1},
		{0.4, 0.5, 0, 0},
	}

	for _, tt := range tests {
		got := Stagger(tt.progress, tt.delay, tt.ramp, Linear)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Stagger(%v, %v, %v) = %v, want %v", tt.progress, tt.delay, tt.ramp, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.25) != 0.25 {
		t.Error("Clamp01 out of range")
	}
	if Clamp01(math.NaN()) != 0 {
		t.Error("Clamp01(NaN) should be 0")
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"ease_out_back", false},
		{"EASE_IN_OUT_CUBIC", false},
		{" linear ", false},
		{"bounce", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := ByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil || fn == nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
