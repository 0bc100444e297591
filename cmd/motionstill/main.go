// Command motionstill renders single frames of the clip to PNG and prints
// their luminance, for checking a layout without ffmpeg.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ivlev/motion2video/internal/analyzer"
	"github.com/ivlev/motion2video/internal/compositor"
	"github.com/ivlev/motion2video/internal/config"
	"github.com/ivlev/motion2video/internal/engine"
	"github.com/ivlev/motion2video/internal/renderer"
	"github.com/ivlev/motion2video/internal/scenes"
)

func main() {
	configPtr := flag.String("config", "", "YAML-файл конфигурации")
	timesPtr := flag.String("t", "", "Моменты времени через запятую (по умолчанию середина каждой сцены)")
	outPtr := flag.String("out", "output/stills", "Папка для PNG")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16, 4:5")
	widthPtr := flag.Int("width", 0, "Ширина (0 - из конфигурации)")
	heightPtr := flag.Int("height", 0, "Высота (0 - из конфигурации)")
	detectorPtr := flag.String("detector", "bright", "Поиск областей: bright, edges или none")
	debugPtr := flag.Bool("debug", false, "Выводить на кадр сцену, время и веса затемнения")
	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		if err := cfg.LoadFile(*configPtr); err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
	}
	if err := cfg.ApplyPreset(*presetPtr); err != nil {
		log.Fatalf("[-] %v", err)
	}
	if *widthPtr > 0 {
		cfg.Width = *widthPtr
	}
	if *heightPtr > 0 {
		cfg.Height = *heightPtr
	}
	cfg.Debug = *debugPtr
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Некорректная конфигурация: %v", err)
	}

	var detector analyzer.Detector
	if *detectorPtr != "none" {
		var err error
		if detector, err = analyzer.NewDetector(*detectorPtr); err != nil {
			log.Fatalf("[-] %v", err)
		}
	}

	assets, err := scenes.NewAssets(nil, cfg.Brand.URL)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	theme := &scenes.Theme{Palette: cfg.Palette, Brand: cfg.Brand, Assets: assets}
	comp, err := compositor.New(cfg, theme, renderer.NewFontBook(cfg.FontRegular, cfg.FontBold))
	if err != nil {
		log.Fatalf("[-] Ошибка таймлайна: %v", err)
	}
	project := engine.NewVideoProject(cfg, comp, nil)

	times, err := parseTimes(*timesPtr)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	if len(times) == 0 {
		for _, s := range comp.Timeline.Slots {
			times = append(times, (s.Start+s.End)/2)
		}
	}

	if err := os.MkdirAll(*outPtr, 0755); err != nil {
		log.Fatalf("[-] %v", err)
	}

	for _, t := range times {
		img := project.RenderStill(t)
		f := comp.Timeline.At(t)

		path := filepath.Join(*outPtr, fmt.Sprintf("frame_%07.3f_%s.png", t, f.Slot.Name))
		if err := writePNG(path, img); err != nil {
			log.Fatalf("[-] %v", err)
		}

		st := analyzer.Luminance(img)
		fmt.Printf("[*] t=%.3fs сцена %d/%s p=%.3f вес=%.3f | яркость %.1f, максимум %d, заполнено %.1f%% -> %s\n",
			t, f.Index(), f.Slot.Name, f.Progress, f.Weights.Combined(), st.Mean, st.Max, st.Lit*100, path)

		if detector == nil {
			continue
		}
		regions, err := detector.Detect(img)
		if err != nil {
			log.Printf("[!] Ошибка анализа кадра t=%.3f: %v", t, err)
			continue
		}
		for i, r := range regions {
			if i == 8 {
				fmt.Printf("    ... еще %d\n", len(regions)-i)
				break
			}
			fmt.Printf("    область %d: %v (%d px)\n", i+1, r.Rect, r.Area)
		}
	}

	fmt.Printf("[+++] Готово: %d кадров в %s\n", len(times), *outPtr)
}

func parseTimes(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректное время %q: %w", part, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("некорректное время %q: нужно конечное число", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("кодирование %s: %w", path, err)
	}
	return f.Close()
}
