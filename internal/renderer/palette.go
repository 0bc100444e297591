package renderer

import (
	"fmt"
	"sort"
	"strings"
)

// Palette is the read-only set of named colors shared by every scene.
type Palette struct {
	BgDark       Color
	BgCard       Color
	GradientTop  Color
	GradientLow  Color
	Primary      Color
	AccentBlue   Color
	AccentPurple Color
	AccentCyan   Color
	AccentPink   Color
	AccentGreen  Color
	AccentOrange Color
	White        Color
	Gray         Color
	DarkGray     Color
}

// DefaultPalette is the dark theme with blue/purple accents.
func DefaultPalette() Palette {
	return Palette{
		BgDark:       RGB(10, 10, 20),
		BgCard:       RGB(20, 22, 40),
		GradientTop:  RGB(10, 10, 25),
		GradientLow:  RGB(20, 15, 50),
		Primary:      RGB(90, 100, 255),
		AccentBlue:   RGB(60, 140, 255),
		AccentPurple: RGB(140, 80, 255),
		AccentCyan:   RGB(0, 210, 255),
		AccentPink:   RGB(255, 80, 160),
		AccentGreen:  RGB(0, 220, 130),
		AccentOrange: RGB(255, 160, 40),
		White:        RGB(255, 255, 255),
		Gray:         RGB(140, 140, 170),
		DarkGray:     RGB(60, 60, 90),
	}
}

func (p *Palette) fields() map[string]*Color {
	return map[string]*Color{
		"bg_dark":       &p.BgDark,
		"bg_card":       &p.BgCard,
		"gradient_top":  &p.GradientTop,
		"gradient_low":  &p.GradientLow,
		"primary":       &p.Primary,
		"accent_blue":   &p.AccentBlue,
		"accent_purple": &p.AccentPurple,
		"accent_cyan":   &p.AccentCyan,
		"accent_pink":   &p.AccentPink,
		"accent_green":  &p.AccentGreen,
		"accent_orange": &p.AccentOrange,
		"white":         &p.White,
		"gray":          &p.Gray,
		"dark_gray":     &p.DarkGray,
	}
}

// Set overrides a named entry, e.g. Set("primary", "#5a64ff").
func (p *Palette) Set(name, hex string) error {
	dst, ok := p.fields()[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown palette entry: %s", name)
	}
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

// Names lists the configurable palette entries in sorted order.
func (p Palette) Names() []string {
	fields := p.fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ambient returns the colors cycled by the ambient particle field.
func (p Palette) Ambient() []Color {
	return []Color{p.AccentBlue, p.AccentPurple, p.AccentCyan}
}
