package scenes

import (
	"math"

	"github.com/ivlev/motion2video/internal/easing"
	"github.com/ivlev/motion2video/internal/renderer"
)

// Routing shows the hub dispatching requests to model nodes.
type Routing struct {
	theme *Theme
}

func (s *Routing) Name() string { return "routing" }

func (s *Routing) Render(c *renderer.Canvas, t, progress float64) {
	pal := s.theme.Palette
	w, h := c.W(), c.H()

	ambient(c, pal, t, 0.02, 8, 77)
	header(c, pal, progress, routingTitle, 90, 48, routingSubtitle, 150, 24)

	hubP := easing.Stagger(progress, 0.2, 0.4, easing.OutElastic)
	hubX, hubY := math.Floor(w/2), math.Floor(h/2)+40
	hubR := 70 * hubP

	if hubR > 1 {
		for ring := 0; ring < 5; ring++ {
			fr := float64(ring)
			rr := hubR + fr*15 + 5*math.Sin(t*3+fr)
			c.StrokeCircle(hubX, hubY, rr, renderer.AlphaColor(pal.Primary, 0.1-fr*0.015), 2)
		}
		c.Disc(hubX, hubY, hubR,
			renderer.AlphaColor(pal.BgCard, hubP),
			renderer.AlphaColor(pal.Primary, hubP*0.6), 3)

		c.TextCentered(hubName(s.theme.Brand.Title), hubX, hubY-10, fontSize(22, hubP), true, renderer.AlphaColor(pal.White, hubP))
		c.TextCentered(hubLabel, hubX, hubY+15, fontSize(18, hubP), true, renderer.AlphaColor(pal.AccentCyan, hubP))
	}

	for i, n := range routeNodes(pal) {
		delay := 0.3 + float64(i)*0.08
		nodeP := easing.Stagger(progress, delay, 0.3, easing.OutBack)
		if nodeP <= 0.01 {
			continue
		}

		nx, ny := hubX+n.dx, hubY+n.dy
		nr := 40 * nodeP

		if nodeP > 0.3 {
			lineP := easing.Stagger(nodeP, 0.3, 0.7, easing.InOutCubic)
			c.Line(hubX, hubY, hubX+n.dx*lineP, hubY+n.dy*lineP, renderer.AlphaColor(n.color, 0.3*nodeP), 2)

			// a dot travelling from the hub to the node
			dotT := math.Mod(t*2+float64(i)*0.5, 1)
			c.Particle(renderer.Lerp(hubX, nx, dotT), renderer.Lerp(hubY, ny, dotT), 4, n.color, 0.8)
		}

		c.Disc(nx, ny, nr,
			renderer.AlphaColor(pal.BgCard, nodeP),
			renderer.AlphaColor(n.color, nodeP*0.7), 2)
		c.TextCentered(n.name, nx, ny, fontSize(16, nodeP), true, renderer.AlphaColor(pal.White, nodeP))
	}

	if progress <= 0.5 {
		return
	}
	for i, req := range routeRequests {
		reqP := easing.Stagger(progress, 0.5+float64(i)*0.08, 0.25, easing.OutBack)
		rx := 120 - 60*(1-reqP)
		ry := 300 + float64(i)*90

		c.Card(rx-60, ry-18, rx+60, ry+18, 10,
			renderer.AlphaColor(pal.BgCard, reqP),
			renderer.AlphaColor(pal.AccentBlue, reqP*0.4), 1)
		c.TextCentered(req, rx, ry, fontSize(20, reqP), false, renderer.AlphaColor(pal.White, reqP))

		if reqP > 0.5 {
			arrowP := easing.InOutCubic(easing.Clamp01((reqP - 0.5) / 0.5))
			ax := renderer.Lerp(rx+70, hubX-hubR, arrowP)
			ay := renderer.Lerp(ry, hubY, arrowP)
			c.Line(rx+70, ry, ax, ay, renderer.AlphaColor(pal.AccentBlue, 0.2*reqP), 1)
		}
	}
}

// hubName is the first word of the product title.
func hubName(title string) string {
	for i, r := range title {
		if r == ' ' {
			return title[:i]
		}
	}
	return title
}
