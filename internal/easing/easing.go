// Package easing maps normalized animation progress onto eased progress.
//
// Every function here is pure and defined over the whole real line. Callers
// clamp the input progress to [0, 1]; only OutBack and OutElastic are allowed
// to leave [0, 1] in their output.
package easing

import (
	"fmt"
	"math"
	"strings"
)

// Func is an easing curve.
type Func func(t float64) float64

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// InOutCubic accelerates through the first half and decelerates through the second.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// OutBack overshoots 1.0 near the end before settling.
func OutBack(t float64) float64 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

// OutElastic oscillates around 1.0 with an exponentially decaying amplitude.
// The endpoints are exact.
func OutElastic(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*(2*math.Pi/3)) + 1
}

// OutQuart is a monotonic quartic ease-out.
func OutQuart(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u*u
}

// Clamp01 limits t to [0, 1]. NaN maps to 0.
func Clamp01(t float64) float64 {
	if t > 1 {
		return 1
	}
	if t >= 0 {
		return t
	}
	return 0
}

// Stagger derives the eased value of one element of a staggered reveal:
// the element starts at delay (in scene progress units) and completes its
// entrance after ramp.
func Stagger(progress, delay, ramp float64, fn Func) float64 {
	if ramp <= 0 {
		if progress >= delay {
			return fn(1)
		}
		return fn(0)
	}
	return fn(Clamp01((progress - delay) / ramp))
}

var registry = map[string]Func{
	"linear":            Linear,
	"ease_in_out_cubic": InOutCubic,
	"ease_out_back":     OutBack,
	"ease_out_elastic":  OutElastic,
	"ease_out_quart":    OutQuart,
}

// ByName resolves an easing curve from its configuration name.
func ByName(name string) (Func, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown easing: %q", name)
	}
	return fn, nil
}
