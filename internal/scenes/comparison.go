package scenes

import (
	"fmt"
	"math"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Comparison fills per-model score bars category by category.
type Comparison struct {
	theme *Theme
}

func (s *Comparison) Name() string { return "comparison" }

func (s *Comparison) Render(c *renderer.Canvas, t, progress float64) {
	pal := s.theme.Palette
	w, h := c.W(), c.H()

	ambient(c, pal, t, 0.02, 8, 55)
	header(c, pal, progress, compareTitle, 90, 48, compareSubtitle, 150, 24)

	cards := scoreCards(pal)
	const cardW, gap = 480.0, 40.0
	total := float64(len(cards))*cardW + float64(len(cards)-1)*gap
	startX := math.Floor((w - total) / 2)

	for mi, card := range cards {
		delay := 0.2 + float64(mi)*0.12
		cardP := easing.Stagger(progress, delay, 0.35, easing.OutBack)
		if cardP <= 0.01 {
			continue
		}

		cx := startX + float64(mi)*(cardW+gap) + cardW/2
		cardY1, cardY2 := 210.0, h-80

		c.Card(cx-cardW/2, cardY1, cx+cardW/2, cardY2, 16,
			renderer.AlphaColor(pal.BgCard, cardP),
			renderer.AlphaColor(card.color, cardP*0.3), 2)
		c.TextCentered(card.name, cx, cardY1+50, fontSize(32, cardP), true, renderer.AlphaColor(card.color, cardP))

		for si, cat := range scoreCategories {
			score := card.scores[si]
			barP := easing.Stagger(progress, delay+0.1+float64(si)*0.06, 0.3, easing.OutQuart)

			by := cardY1 + 110 + float64(si)*120
			barX1 := cx - cardW/2 + 40
			barX2 := cx + cardW/2 - 40

			c.Text(cat, barX1, by, fontSize(18, cardP), false, renderer.AlphaColor(pal.Gray, cardP*barP))
			c.Text(fmt.Sprintf("%d%%", int(score*barP)), barX2-50, by, fontSize(18, cardP), true, renderer.AlphaColor(pal.White, cardP*barP))

			barY := by + 30
			c.FillRoundedRect(barX1, barY, barX2, barY+10, 5, renderer.AlphaColor(pal.DarkGray, cardP*0.3))

			fillW := math.Trunc((barX2 - barX1) * (score / 100) * barP)
			if fillW > 4 {
				c.FillRoundedRect(barX1, barY, barX1+fillW, barY+10, 5, renderer.AlphaColor(card.color, cardP*0.8))
			}
		}
	}
}
