// Package particles generates the ambient drifting dots.
//
// The field keeps no state between frames. Each call reseeds its generator, so
// particle i always gets the same base position, speed and size, and only the
// time term moves it. Rendering frame 500 directly gives the same result as
// rendering frames 0..500 in order.
package particles

import (
	"math"
	"math/rand"
)

// Particle is one sample of the field at a given time.
type Particle struct {
	Index int
	X, Y  float64
	Size  float64
	Alpha float64
}

const (
	driftSpeed  = 40.0 // horizontal units per second at speed 1
	swayAmp     = 30.0
	swayFreq    = 0.8
	twinkleFreq = 2.0
)

// Field returns count particles for a w x h area at time t.
func Field(w, h, t float64, count int, seed int64) []Particle {
	if count <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	r := rand.New(rand.NewSource(seed))
	out := make([]Particle, count)
	for i := range out {
		// draw order matters: speed, base x, base y, size
		speed := 0.2 + r.Float64()*0.5
		baseX := r.Float64() * w
		baseY := r.Float64() * h
		size := 1.5 + r.Float64()*2.5

		fi := float64(i)
		out[i] = Particle{
			Index: i,
			X:     wrap(baseX+t*driftSpeed*speed, w),
			Y:     wrap(baseY+math.Sin(t*speed*swayFreq+fi)*swayAmp, h),
			Size:  size,
			Alpha: 0.3 + 0.3*math.Sin(t*twinkleFreq+fi),
		}
	}
	return out
}

// wrap is a floor modulo: the result is always in [0, m).
func wrap(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		return 0
	}
	return r
}
