package scenes

import (
	"math"
	"unicode/utf8"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Models shows the available models as a row of cards popping in one by one.
type Models struct {
	theme *Theme
}

func (s *Models) Name() string { return "models" }

func (s *Models) Render(c *renderer.Canvas, t, progress float64) {
	pal := s.theme.Palette
	w, h := c.W(), c.H()

	ambient(c, pal, t, 0.02, 10, 99)
	header(c, pal, progress, modelsTitle, 100, 52, "", 0, 0)
	if progress > 0.1 {
		subP := easing.Stagger(progress, 0.1, 0.25, easing.InOutCubic)
		c.TextCentered(modelsSubtitle, w/2, 165, 26, false, renderer.AlphaColor(pal.Gray, subP))
	}

	models := modelLineup(pal)
	const cardW, cardH, gap = 300.0, 320.0, 30.0
	totalW := float64(len(models))*cardW + float64(len(models)-1)*gap
	startX := math.Floor((w - totalW) / 2)

	for i, m := range models {
		delay := 0.15 + float64(i)*0.1
		cardP := easing.Stagger(progress, delay, 0.35, easing.OutBack)
		if cardP <= 0.01 {
			continue
		}

		cx := startX + float64(i)*(cardW+gap) + cardW/2
		cy := math.Floor(h/2) + 60
		yOff := 50 * (1 - cardP)

		x1, y1 := cx-cardW/2, cy-cardH/2+yOff
		x2, y2 := cx+cardW/2, cy+cardH/2+yOff
		c.Card(x1, y1, x2, y2, 16,
			renderer.AlphaColor(pal.BgCard, cardP),
			renderer.AlphaColor(m.color, cardP*0.4), 2)

		iconY := y1 + 80
		c.GlowingCircle(cx, iconY, 40*cardP, renderer.AlphaColor(m.color, cardP), 3, 2)
		c.TextCentered(initial(m.name), cx, iconY, fontSize(36, cardP), true, renderer.AlphaColor(m.color, cardP))

		c.TextCentered(m.name, cx, y1+155, fontSize(28, cardP), true, renderer.AlphaColor(pal.White, cardP))
		c.TextCentered(m.company, cx, y1+195, fontSize(18, cardP), false, renderer.AlphaColor(pal.Gray, cardP))

		barY := y1 + 240
		barW := math.Trunc(200 * cardP * easing.Stagger(progress, delay+0.2, 0.3, easing.InOutCubic))
		c.FillRoundedRect(cx-100, barY, cx-100+barW, barY+6, 3, renderer.AlphaColor(m.color, cardP*0.8))
		c.StrokeRoundedRect(cx-100, barY, cx+100, barY+6, 3, renderer.AlphaColor(pal.DarkGray, cardP*0.3), 1)

		c.TextCentered(statusLabel, cx, barY+25, fontSize(15, cardP), false, renderer.AlphaColor(pal.AccentGreen, cardP))
	}
}

// initial is the first letter of name, or "" for an empty name.
func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return name[:size]
}
