package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/motion2video/internal/renderer"
)

// Render modes of the engine.
const (
	ModeStream   = "stream"   // one encoder, frames piped in order
	ModeSegments = "segments" // frame ranges encoded concurrently, then concatenated
)

// DefaultScenes is the standard running order.
var DefaultScenes = []string{"intro", "models", "routing", "comparison", "pricing", "outro"}

type Config struct {
	OutputVideo   string
	TotalDuration float64
	Width         int
	Height        int
	FPS           int
	Workers       int
	FadeDuration  float64
	OpenFade      float64
	CloseFade     float64
	Scenes        []SceneEntry
	Palette       renderer.Palette
	Brand         Brand
	FontRegular   string
	FontBold      string
	Preset        string
	Mode          string
	Segments      int
	VideoEncoder  string
	Quality       int
	Debug         bool
	ShowStats     bool
	MetricsFile   string
	MetricsAddr   string
	BuildVersion  string
}

// SceneEntry places a named scene on the timeline with a relative length.
type SceneEntry struct {
	Name  string  `yaml:"name"`
	Share float64 `yaml:"share"`
}

// Brand is the marketing copy painted by the scenes.
type Brand struct {
	Name    string `yaml:"name"`    // big logo word
	Accent  string `yaml:"accent"`  // suffix drawn in the accent color
	Title   string `yaml:"title"`   // full product name
	Tagline string `yaml:"tagline"` // one-line pitch
	Badge   string `yaml:"badge"`
	URL     string `yaml:"url"`
	CTA     string `yaml:"cta"`
	Logo    string `yaml:"logo"` // optional image or PDF path
}

type SegmentParams struct {
	Width, Height int
	FPS           int
	FirstFrame    int
	Frames        int
	Index         int
}

// Duration of the segment in seconds.
func (p SegmentParams) Duration() float64 {
	return float64(p.Frames) / float64(p.FPS)
}

func DefaultBrand() Brand {
	return Brand{
		Name:    "ATLAS",
		Accent:  "AI",
		Title:   "Atlas AI",
		Tagline: "L'IA multi-modele qui travaille pour vous",
		Badge:   "Multi-Model  |  Routing Intelligent  |  API Unifiee",
		URL:     "atlas-ai.fr",
		CTA:     "Commencer Gratuitement",
	}
}

func Default() *Config {
	scenes := make([]SceneEntry, len(DefaultScenes))
	for i, name := range DefaultScenes {
		scenes[i] = SceneEntry{Name: name, Share: 1}
	}
	return &Config{
		TotalDuration: 24,
		Width:         1920,
		Height:        1080,
		FPS:           30,
		Workers:       1,
		FadeDuration:  0.5,
		OpenFade:      0.8,
		CloseFade:     1.5,
		Scenes:        scenes,
		Palette:       renderer.DefaultPalette(),
		Brand:         DefaultBrand(),
		FontRegular:   "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		FontBold:      "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		Mode:          ModeSegments,
		VideoEncoder:  "libx264",
		Quality:       23,
	}
}

// ApplyPreset switches the frame size for a named aspect ratio.
func (c *Config) ApplyPreset(preset string) error {
	switch preset {
	case "":
		return nil
	case "16:9":
		c.Width, c.Height = 1920, 1080
	case "9:16":
		c.Width, c.Height = 1080, 1920
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q (16:9, 9:16, 4:5)", preset)
	}
	c.Preset = preset
	return nil
}

// SceneDurations returns the length of every scene in seconds.
func (c *Config) SceneDurations() []float64 {
	total := 0.0
	for _, s := range c.Scenes {
		total += s.Share
	}
	out := make([]float64, len(c.Scenes))
	for i, s := range c.Scenes {
		out[i] = c.TotalDuration * s.Share / total
	}
	return out
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("размер кадра должен быть положительным: %dx%d", c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("yuv420p требует четных размеров: %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("FPS должен быть положительным: %d", c.FPS)
	}
	if !(c.TotalDuration > 0) {
		return fmt.Errorf("длительность должна быть положительной: %v", c.TotalDuration)
	}
	if c.FadeDuration < 0 || c.OpenFade < 0 || c.CloseFade < 0 {
		return fmt.Errorf("длительности переходов не могут быть отрицательными")
	}
	if len(c.Scenes) == 0 {
		return fmt.Errorf("не задано ни одной сцены")
	}
	for _, s := range c.Scenes {
		if !(s.Share > 0) {
			return fmt.Errorf("сцена %s: доля должна быть положительной", s.Name)
		}
	}
	for i, d := range c.SceneDurations() {
		if c.FadeDuration > d/2 {
			return fmt.Errorf("переход %.2fs длиннее половины сцены %d (%.2fs)", c.FadeDuration, i, d)
		}
	}
	switch c.Mode {
	case ModeStream, ModeSegments:
	default:
		return fmt.Errorf("неизвестный режим %q (stream, segments)", c.Mode)
	}
	return nil
}

// File is the YAML layout of a config file. Zero values keep the current setting.
type File struct {
	Width     int               `yaml:"width"`
	Height    int               `yaml:"height"`
	FPS       int               `yaml:"fps"`
	Duration  float64           `yaml:"duration"`
	Fade      *float64          `yaml:"fade"`
	OpenFade  *float64          `yaml:"open_fade"`
	CloseFade *float64          `yaml:"close_fade"`
	Workers   int               `yaml:"workers"`
	Quality   int               `yaml:"quality"`
	Encoder   string            `yaml:"encoder"`
	Mode      string            `yaml:"mode"`
	Preset    string            `yaml:"preset"`
	Scenes    []SceneEntry      `yaml:"scenes"`
	Palette   map[string]string `yaml:"palette"`
	Brand     *Brand            `yaml:"brand"`
	Fonts     struct {
		Regular string `yaml:"regular"`
		Bold    string `yaml:"bold"`
	} `yaml:"fonts"`
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("чтение конфигурации: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	return c.Apply(&f)
}

// Apply overlays the non-zero fields of f.
func (c *Config) Apply(f *File) error {
	if f.Preset != "" {
		if err := c.ApplyPreset(f.Preset); err != nil {
			return err
		}
	}
	if f.Width > 0 {
		c.Width = f.Width
	}
	if f.Height > 0 {
		c.Height = f.Height
	}
	if f.FPS > 0 {
		c.FPS = f.FPS
	}
	if f.Duration > 0 {
		c.TotalDuration = f.Duration
	}
	if f.Fade != nil {
		c.FadeDuration = *f.Fade
	}
	if f.OpenFade != nil {
		c.OpenFade = *f.OpenFade
	}
	if f.CloseFade != nil {
		c.CloseFade = *f.CloseFade
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}
	if f.Quality > 0 {
		c.Quality = f.Quality
	}
	if f.Encoder != "" {
		c.VideoEncoder = f.Encoder
	}
	if f.Mode != "" {
		c.Mode = strings.ToLower(f.Mode)
	}
	if len(f.Scenes) > 0 {
		c.Scenes = make([]SceneEntry, len(f.Scenes))
		for i, s := range f.Scenes {
			if s.Share == 0 {
				s.Share = 1
			}
			c.Scenes[i] = s
		}
	}
	for name, hex := range f.Palette {
		if err := c.Palette.Set(name, hex); err != nil {
			return fmt.Errorf("палитра: %w", err)
		}
	}
	if f.Brand != nil {
		c.Brand = mergeBrand(c.Brand, *f.Brand)
	}
	if f.Fonts.Regular != "" {
		c.FontRegular = f.Fonts.Regular
	}
	if f.Fonts.Bold != "" {
		c.FontBold = f.Fonts.Bold
	}
	return nil
}

func mergeBrand(base, over Brand) Brand {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Name, over.Name)
	pick(&base.Accent, over.Accent)
	pick(&base.Title, over.Title)
	pick(&base.Tagline, over.Tagline)
	pick(&base.Badge, over.Badge)
	pick(&base.URL, over.URL)
	pick(&base.CTA, over.CTA)
	pick(&base.Logo, over.Logo)
	return base
}
