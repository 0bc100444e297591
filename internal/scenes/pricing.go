package scenes

import (
	"math"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Pricing presents the plans side by side, the highlighted one raised.
type Pricing struct {
	theme *Theme
}

func (s *Pricing) Name() string { return "pricing" }

func (s *Pricing) Render(c *renderer.Canvas, t, progress float64) {
	pal := s.theme.Palette
	w := c.W()

	ambient(c, pal, t, 0.02, 8, 33)
	header(c, pal, progress, pricingTitle, 80, 48, "", 0, 0)

	plans := pricingPlans(pal)
	const cardW, cardH, gap = 480.0, 560.0, 50.0
	total := float64(len(plans))*cardW + float64(len(plans)-1)*gap
	startX := math.Floor((w - total) / 2)

	for i, pl := range plans {
		delay := 0.15 + float64(i)*0.12
		cardP := easing.Stagger(progress, delay, 0.35, easing.OutBack)
		if cardP <= 0.01 {
			continue
		}

		cx := startX + float64(i)*(cardW+gap) + cardW/2
		cardY1 := 160.0
		borderW, borderA := 2.0, 0.3
		if pl.highlighted {
			cardY1 -= 20
			borderW, borderA = 3, 0.7
		}
		cardY2 := cardY1 + cardH
		left := cx - cardW/2

		c.Card(left, cardY1, cx+cardW/2, cardY2, 20,
			renderer.AlphaColor(pal.BgCard, cardP),
			renderer.AlphaColor(pl.color, cardP*borderA), borderW)

		if pl.highlighted && cardP > 0.5 {
			by := cardY1 - 2
			c.FillRoundedRect(cx-55, by-12, cx+55, by+12, 8, renderer.AlphaColor(pl.color, cardP))
			c.TextCentered(pl.badge, cx, by, 14, true, renderer.AlphaColor(pal.White, cardP))
		}

		c.TextCentered(pl.name, cx, cardY1+60, fontSize(34, cardP), true, renderer.AlphaColor(pal.White, cardP))
		c.TextCentered(pl.price, cx, cardY1+130, fontSize(44, cardP), true, renderer.AlphaColor(pl.color, cardP))

		sepY := cardY1 + 180
		sepW := math.Trunc(cardW * 0.6 * cardP)
		c.Line(cx-floorHalf(sepW), sepY, cx+floorHalf(sepW), sepY, renderer.AlphaColor(pal.DarkGray, cardP*0.3), 1)

		featSize := fontSize(20, cardP)
		for fi, feat := range pl.features {
			featP := easing.Stagger(progress, delay+0.15+float64(fi)*0.05, 0.25, easing.InOutCubic)
			fy := cardY1 + 220 + float64(fi)*50
			c.TextCentered("+", left+60, fy, featSize, false, renderer.AlphaColor(pal.AccentGreen, cardP*featP))
			c.Text(feat, left+80, fy-10, featSize, false, renderer.AlphaColor(pal.Gray, cardP*featP))
		}

		if progress <= delay+0.3 {
			continue
		}
		btnP := easing.Stagger(progress, delay+0.3, 0.2, easing.OutBack)
		btnY := cardY2 - 70
		btnW := math.Trunc(200 * btnP)
		if btnW <= 10 {
			continue
		}
		x1, x2 := cx-floorHalf(btnW), cx+floorHalf(btnW)
		textCol := pl.color
		if pl.highlighted {
			c.FillRoundedRect(x1, btnY-20, x2, btnY+20, 12, renderer.AlphaColor(pl.color, cardP*0.8))
			textCol = pal.White
		}
		c.StrokeRoundedRect(x1, btnY-20, x2, btnY+20, 12, renderer.AlphaColor(pl.color, cardP*0.6), 2)
		c.TextCentered(planButton, cx, btnY, fontSize(18, btnP), true, renderer.AlphaColor(textCol, cardP))
	}
}
