package renderer

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Color is an opaque RGB sample. Transparency is never stored: it is faked by
// scaling the channels toward black with AlphaColor.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from channel values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA converts the color to a fully opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb (the leading # is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	var c Color
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Lerp performs linear interpolation between a and b with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}

// LerpColor interpolates each channel and truncates to an integer intensity.
func LerpColor(c1, c2 Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
	}
}

// AlphaColor scales every channel by alpha and saturates to [0, 255].
// The result is darkened toward black, not blended with the destination.
func AlphaColor(c Color, alpha float64) Color {
	return Color{
		R: scaleChannel(c.R, alpha),
		G: scaleChannel(c.G, alpha),
		B: scaleChannel(c.B, alpha),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return saturate(float64(a) + (float64(b)-float64(a))*t)
}

func scaleChannel(v uint8, alpha float64) uint8 {
	return saturate(float64(v) * alpha)
}

// saturate truncates toward zero and clamps to a channel value.
func saturate(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func clamp01(t float64) float64 {
	if t > 1 {
		return 1
	}
	if t >= 0 {
		return t
	}
	return 0
}
