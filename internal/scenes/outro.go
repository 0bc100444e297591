package scenes

import (
	"math"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Outro is the closing call to action.
type Outro struct {
	theme *Theme
}

func (s *Outro) Name() string { return "outro" }

func (s *Outro) Render(c *renderer.Canvas, t, progress float64) {
	pal := s.theme.Palette
	brand := s.theme.Brand
	w, h := c.W(), c.H()
	cx, cy := math.Floor(w/2), math.Floor(h/2)

	ambient(c, pal, t, 0.03, 25, 11)

	orbitP := easing.Stagger(progress, 0, 0.4, easing.InOutCubic)
	colors := pal.Ambient()
	for i := 0; i < 12; i++ {
		fi := float64(i)
		angle := t*1.5 + 2*math.Pi*fi/12
		radius := 250 * orbitP
		size := 4 + 2*math.Sin(t*3+fi)
		c.Particle(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)*0.4, size, colors[i%len(colors)], 0.7)
	}

	ringP := easing.Stagger(progress, 0, 0.5, easing.OutElastic)
	for ring := 0; ring < 3; ring++ {
		fr := float64(ring)
		r := (200 + fr*60) * ringP
		col := renderer.LerpColor(pal.AccentBlue, pal.AccentPurple, fr/3)
		c.StrokeCircle(cx, cy, r, renderer.AlphaColor(col, 0.1+0.05*math.Sin(t*2+fr)), 2)
	}

	if progress > 0.15 {
		textP := easing.Stagger(progress, 0.15, 0.35, easing.OutBack)
		size := fontSize(90, textP)
		y := cy - 80

		if a := s.theme.Assets; a != nil && a.Logo != nil {
			lw, lh := logoBox(a.Logo.Bounds().Dx(), a.Logo.Bounds().Dy(), 120)
			c.ImageCentered(a.Logo, cx, y-130, lw*textP, lh*textP, textP)
		}

		glow := renderer.AlphaColor(pal.Primary, 0.3*textP)
		for _, o := range [][2]float64{{3, 3}, {-3, -3}, {3, -3}, {-3, 3}} {
			c.TextCentered(brand.Title, cx+o[0], y+o[1], size, true, glow)
		}
		c.TextCentered(brand.Title, cx, y, size, true, renderer.AlphaColor(pal.White, textP))
	}

	if progress > 0.4 {
		tagP := easing.Stagger(progress, 0.4, 0.25, easing.InOutCubic)
		c.TextCentered(brand.Tagline, cx, cy+20, 30, false, renderer.AlphaColor(pal.Gray, tagP))
	}

	if progress > 0.55 {
		btnP := easing.Stagger(progress, 0.55, 0.25, easing.OutBack)
		btnW := math.Trunc(350 * btnP)
		btnH := math.Trunc(56 * btnP)
		btnY := cy + 90
		if btnW > 20 {
			c.Card(cx-floorHalf(btnW), btnY-floorHalf(btnH), cx+floorHalf(btnW), btnY+floorHalf(btnH), 14,
				renderer.AlphaColor(pal.Primary, btnP*0.9),
				renderer.AlphaColor(pal.AccentCyan, btnP*0.5), 2)
			c.TextCentered(brand.CTA, cx, btnY, fontSize(24, btnP), true, renderer.AlphaColor(pal.White, btnP))
		}
	}

	if progress > 0.7 {
		urlP := easing.Stagger(progress, 0.7, 0.2, easing.InOutCubic)
		c.TextCentered(brand.URL, cx, cy+160, 20, false, renderer.AlphaColor(pal.AccentBlue, urlP*0.7))

		if a := s.theme.Assets; a != nil && len(a.QR) > 0 {
			const qrSize = 140.0
			c.QR(a.QR, w-qrSize/2-60, h-qrSize/2-60, qrSize,
				renderer.AlphaColor(pal.BgDark, urlP), renderer.AlphaColor(pal.White, urlP*0.9))
		}
	}

	if progress > 0.6 {
		pillTotal := float64(len(outroPills))*200 + float64(len(outroPills)-1)*20
		pillStart := math.Floor((w - pillTotal) / 2)
		for i, pill := range outroPills {
			pillP := easing.Stagger(progress, 0.6+float64(i)*0.05, 0.2, easing.OutBack)
			px := pillStart + float64(i)*220 + 100
			py := h - 120
			c.StrokeRoundedRect(px-90, py-18, px+90, py+18, 10, renderer.AlphaColor(pal.Primary, pillP*0.4), 1)
			c.TextCentered(pill, px, py, fontSize(17, pillP), false, renderer.AlphaColor(pal.AccentCyan, pillP*0.8))
		}
	}
}

// logoBox fits a w x h image into a square of side edge, keeping its aspect.
func logoBox(w, h int, edge float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w >= h {
		return edge, edge * float64(h) / float64(w)
	}
	return edge * float64(w) / float64(h), edge
}
