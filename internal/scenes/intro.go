package scenes

import (
	"math"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Intro reveals the logo: converging energy lines, an elastic orb, then the
// brand name, tagline and badge.
type Intro struct {
	theme *Theme
}

func (s *Intro) Name() string { return "intro" }

func (s *Intro) Render(c *renderer.Canvas, t, progress float64) {
	pal := s.theme.Palette
	brand := s.theme.Brand
	cx, cy := math.Floor(c.W()/2), math.Floor(c.H()/2)

	ambient(c, pal, t, 0.03, 15, 42)

	if progress < 0.6 {
		lineP := easing.InOutCubic(progress / 0.6)
		const numLines = 24
		for i := 0; i < numLines; i++ {
			angle := 2 * math.Pi * float64(i) / numLines
			outer := 900 * (1 - lineP*0.7)
			inner := 10.0
			x1 := cx + outer*math.Cos(angle)
			y1 := cy + outer*math.Sin(angle)
			x2 := cx + inner*math.Cos(angle+math.Pi)
			y2 := cy + inner*math.Sin(angle+math.Pi)
			col := renderer.LerpColor(pal.AccentBlue, pal.AccentPurple, float64(i)/numLines)
			c.Line(x1, y1, x2, y2, renderer.AlphaColor(col, 0.5*(1-lineP)), 2)
		}
	}

	orbP := easing.Stagger(progress, 0, 0.5, easing.OutElastic)
	pulse := 0.9 + 0.1*math.Sin(t*5)
	r := orbP * 60 * pulse
	if r > 1 {
		for ring := 0; ring < 4; ring++ {
			fr := float64(ring)
			ringR := r + fr*20 + 10*math.Sin(t*3+fr)
			c.GlowingCircle(cx, cy, ringR, renderer.LerpColor(pal.AccentBlue, pal.AccentPurple, fr/4), 2, 0)
			c.StrokeCircle(cx, cy, ringR, renderer.AlphaColor(pal.Primary, 0.15-fr*0.03), 2)
		}

		for layer := int(r); layer > 0; layer -= 2 {
			ratio := float64(layer) / r
			col := renderer.LerpColor(pal.AccentCyan, pal.Primary, ratio)
			c.FillCircle(cx, cy, float64(layer), renderer.AlphaColor(col, (1-ratio)*0.4))
		}
	}

	const logoSize = 110.0
	logoY := cy - 80

	if progress > 0.3 {
		textP := easing.Stagger(progress, 0.3, 0.4, easing.OutBack)
		size := fontSize(logoSize, textP)
		if size > 5 {
			glow := renderer.AlphaColor(pal.AccentBlue, 0.3*textP)
			c.TextCentered(brand.Name, cx+2, logoY+2, size, true, glow)
			c.TextCentered(brand.Name, cx, logoY, size, true, pal.White)
		}
	}

	if progress > 0.45 && brand.Accent != "" {
		accentP := easing.Stagger(progress, 0.45, 0.35, easing.OutBack)
		size := fontSize(logoSize, accentP)
		if size > 5 {
			// anchored to the final width of the name so it does not drift while scaling
			nameW, _ := c.MeasureText(brand.Name, logoSize, true)
			ax := cx + math.Floor(nameW/2) + 20
			c.TextCentered(brand.Accent, ax, logoY, size, true, pal.AccentCyan)
		}
	}

	if progress > 0.6 {
		subP := easing.Stagger(progress, 0.6, 0.3, easing.InOutCubic)
		yOff := 40 * (1 - subP)
		c.TextCentered(brand.Tagline, cx, cy+50+yOff, 32, false, renderer.AlphaColor(pal.Gray, subP))
	}

	if progress > 0.75 {
		badgeP := easing.Stagger(progress, 0.75, 0.25, easing.OutBack)
		c.TextCentered(brand.Badge, cx, cy+120, 22, true, renderer.AlphaColor(pal.AccentBlue, badgeP*0.8))
	}
}
