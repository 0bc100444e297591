package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/motion2video/internal/compositor"
	"github.com/ivlev/motion2video/internal/config"
	"github.com/ivlev/motion2video/internal/engine"
	"github.com/ivlev/motion2video/internal/metrics"
	"github.com/ivlev/motion2video/internal/renderer"
	"github.com/ivlev/motion2video/internal/scenes"
	"github.com/ivlev/motion2video/internal/source"
	"github.com/ivlev/motion2video/internal/system"
	"github.com/ivlev/motion2video/internal/timeline"
	"github.com/ivlev/motion2video/internal/video"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	cfg := config.Default()
	cfg.VideoEncoder = "auto"
	cfg.Quality = 0
	cfg.Workers = system.DefaultWorkers()
	cfg.BuildVersion = buildVersion

	configPtr := flag.String("config", "", "YAML-файл конфигурации (размеры, сцены, палитра, бренд)")
	timelinePtr := flag.String("timeline", "", "YAML-план таймлайна (порядок и доли сцен), например из -dump-timeline")
	dumpPtr := flag.Bool("dump-timeline", false, "Сохранить план таймлайна в output/ и выйти без рендера")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	flag.Float64Var(&cfg.TotalDuration, "duration", cfg.TotalDuration, "Общая длительность ролика (сек)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Ширина")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Высота")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "FPS")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Потоки рендеринга")
	flag.Float64Var(&cfg.FadeDuration, "fade", cfg.FadeDuration, "Затемнение на стыке сцен (сек)")
	flag.Float64Var(&cfg.OpenFade, "open-fade", cfg.OpenFade, "Появление из черного в начале (сек)")
	flag.Float64Var(&cfg.CloseFade, "close-fade", cfg.CloseFade, "Уход в черное в конце (сек)")
	scenesPtr := flag.String("scenes", "", "Порядок сцен через запятую: "+strings.Join(scenes.Names(), ", "))
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "Режим: segments (параллельные сегменты) или stream (один поток ffmpeg)")
	flag.IntVar(&cfg.Segments, "segments", 0, "Количество сегментов (0 - по числу потоков)")
	flag.StringVar(&cfg.VideoEncoder, "encoder", cfg.VideoEncoder, "Кодек: auto, libx264, h264_nvenc, h264_videotoolbox")
	flag.IntVar(&cfg.Quality, "quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	logoPtr := flag.String("logo", "", "Логотип: PNG/JPEG, PDF (первая страница) или папка (самый свежий файл)")
	urlPtr := flag.String("url", "", "Адрес сайта для финальной сцены и QR-кода")
	flag.StringVar(&cfg.FontRegular, "font", cfg.FontRegular, "TTF-шрифт для обычного текста")
	flag.StringVar(&cfg.FontBold, "font-bold", cfg.FontBold, "TTF-шрифт для заголовков")
	flag.BoolVar(&cfg.Debug, "debug", false, "Выводить на кадр сцену, время и веса затемнения")
	flag.BoolVar(&cfg.ShowStats, "stats", true, "Показать отчет о производительности")
	flag.StringVar(&cfg.MetricsFile, "metrics-file", "", "Сохранить метрики Prometheus в файл после рендера")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Адрес HTTP для /metrics во время рендера, например :9100")
	flag.Parse()
	flagged, set := *cfg, setFlags()

	// Файл конфигурации ложится поверх значений по умолчанию,
	// явно заданные флаги - поверх файла.
	if *configPtr != "" {
		if err := cfg.LoadFile(*configPtr); err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
		overrideSetFlags(cfg, &flagged, set)
		fmt.Printf("[*] Конфигурация: %s\n", *configPtr)
	}

	if *timelinePtr != "" {
		plan, err := timeline.ReadPlan(*timelinePtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения плана: %v", err)
		}
		applyPlan(cfg, plan)
		fmt.Printf("[*] Используется план: %s\n", *timelinePtr)
	}

	if *scenesPtr != "" {
		cfg.Scenes = nil
		for _, name := range strings.Split(*scenesPtr, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Scenes = append(cfg.Scenes, config.SceneEntry{Name: name, Share: 1})
			}
		}
	}
	if err := applyPreset(cfg, *presetPtr, &flagged, set); err != nil {
		log.Fatalf("[-] %v", err)
	}
	if *logoPtr != "" {
		cfg.Brand.Logo = *logoPtr
	}
	if *urlPtr != "" {
		cfg.Brand.URL = *urlPtr
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Некорректная конфигурация: %v", err)
	}

	theme, err := buildTheme(cfg)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	fonts := renderer.NewFontBook(cfg.FontRegular, cfg.FontBold)
	comp, err := compositor.New(cfg, theme, fonts)
	if err != nil {
		log.Fatalf("[-] Ошибка таймлайна: %v", err)
	}

	if *dumpPtr {
		path := timeline.GeneratePlanPath("output")
		if err := timeline.WritePlan(comp.Timeline.Plan(cfg.FPS), path); err != nil {
			log.Fatalf("[-] Ошибка записи плана: %v", err)
		}
		fmt.Printf("[+++] План сохранен: %s\n", path)
		return
	}

	if !system.FFmpegAvailable() {
		log.Fatalf("[-] ffmpeg не найден в PATH")
	}

	if cfg.VideoEncoder == "" || cfg.VideoEncoder == "auto" {
		cfg.VideoEncoder, _ = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
		}
	}
	if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
	}

	cfg.OutputVideo = *outputPtr
	if cfg.OutputVideo == "" {
		name := strings.ReplaceAll(strings.ToLower(cfg.Brand.Name), " ", "_")
		if name == "" {
			name = "motion"
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project := engine.NewVideoProject(cfg, comp, &video.FFmpegEncoder{})
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}

// buildTheme loads the brand assets. A broken logo is reported and skipped.
func buildTheme(cfg *config.Config) (*scenes.Theme, error) {
	assets, err := scenes.NewAssets(loadLogo(cfg.Brand.Logo), cfg.Brand.URL)
	if err != nil {
		return nil, err
	}
	return &scenes.Theme{Palette: cfg.Palette, Brand: cfg.Brand, Assets: assets}, nil
}

func loadLogo(path string) image.Image {
	if path == "" {
		return nil
	}
	img, err := source.LoadLogo(path, 150)
	if err != nil {
		log.Printf("[!] Логотип не загружен, финальная сцена без него: %v", err)
		return nil
	}
	b := img.Bounds()
	fmt.Printf("[*] Логотип: %s (%dx%d)\n", path, b.Dx(), b.Dy())
	return img
}

// setFlags collects the names of the flags passed on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// overrideSetFlags copies the explicitly passed flags (or only the listed
// ones) from flagged back over cfg.
func overrideSetFlags(cfg, flagged *config.Config, set map[string]bool, only ...string) {
	for name := range set {
		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}
		switch name {
		case "duration":
			cfg.TotalDuration = flagged.TotalDuration
		case "width":
			cfg.Width = flagged.Width
		case "height":
			cfg.Height = flagged.Height
		case "fps":
			cfg.FPS = flagged.FPS
		case "workers":
			cfg.Workers = flagged.Workers
		case "fade":
			cfg.FadeDuration = flagged.FadeDuration
		case "open-fade":
			cfg.OpenFade = flagged.OpenFade
		case "close-fade":
			cfg.CloseFade = flagged.CloseFade
		case "mode":
			cfg.Mode = flagged.Mode
		case "encoder":
			cfg.VideoEncoder = flagged.VideoEncoder
		case "quality":
			cfg.Quality = flagged.Quality
		case "font":
			cfg.FontRegular = flagged.FontRegular
		case "font-bold":
			cfg.FontBold = flagged.FontBold
		}
	}
}

// applyPreset switches the frame size; explicit -width and -height win.
func applyPreset(cfg *config.Config, preset string, flagged *config.Config, set map[string]bool) error {
	if err := cfg.ApplyPreset(preset); err != nil {
		return err
	}
	overrideSetFlags(cfg, flagged, set, "width", "height")
	return nil
}

// applyPlan takes duration, fps, fades and running order from a saved plan.
func applyPlan(cfg *config.Config, plan *timeline.Plan) {
	if plan.Duration > 0 {
		cfg.TotalDuration = plan.Duration
	}
	if plan.FPS > 0 {
		cfg.FPS = plan.FPS
	}
	cfg.FadeDuration = plan.Fades.Scene
	cfg.OpenFade = plan.Fades.Open
	cfg.CloseFade = plan.Fades.Close
	if len(plan.Scenes) > 0 {
		cfg.Scenes = make([]config.SceneEntry, len(plan.Scenes))
		for i, s := range plan.Scenes {
			cfg.Scenes[i] = config.SceneEntry{Name: s.Name, Share: s.Share}
		}
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	fmt.Printf("[*] Метрики: http://%s/metrics\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[!] Сервер метрик остановлен: %v", err)
	}
}
