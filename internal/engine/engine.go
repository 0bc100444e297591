package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/motion2video/internal/analyzer"
	"github.com/ivlev/motion2video/internal/compositor"
	"github.com/ivlev/motion2video/internal/config"
	"github.com/ivlev/motion2video/internal/metrics"
	"github.com/ivlev/motion2video/internal/system"
	"github.com/ivlev/motion2video/internal/timeline"
	"github.com/ivlev/motion2video/internal/video"
)

type VideoProject struct {
	Config     *config.Config
	Compositor *compositor.Compositor
	Encoder    video.VideoEncoder
	Pool       *system.ImagePool

	scenes   []metrics.SceneMetrics
	inFlight int
	rendered atomic.Int64
	total    int
	tempDir  string
}

// NewVideoProject wires the compositor to an encoder. Frames are taken from
// and returned to a shared pool; an *video.FFmpegEncoder without a Release
// hook is given one.
func NewVideoProject(cfg *config.Config, comp *compositor.Compositor, ve video.VideoEncoder) *VideoProject {
	p := &VideoProject{
		Config:     cfg,
		Compositor: comp,
		Encoder:    ve,
		Pool:       system.NewImagePool(),
	}
	if ff, ok := ve.(*video.FFmpegEncoder); ok && ff.Release == nil {
		ff.Release = p.Pool.Put
	}
	for _, s := range comp.Timeline.Slots {
		p.scenes = append(p.scenes, metrics.NewSceneMetrics(s.Name))
	}
	return p
}

// FrameRange is a contiguous run of frame indices.
type FrameRange struct {
	First int
	Count int
}

// SplitFrames cuts total frames into at most parts contiguous ranges whose
// lengths differ by at most one, in timestamp order.
func SplitFrames(total, parts int) []FrameRange {
	if total <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > total {
		parts = total
	}
	base, extra := total/parts, total%parts
	ranges := make([]FrameRange, parts)
	first := 0
	for i := range ranges {
		n := base
		if i < extra {
			n++
		}
		ranges[i] = FrameRange{First: first, Count: n}
		first += n
	}
	return ranges
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()
	cfg := p.Config

	p.total = timeline.FrameCount(cfg.TotalDuration, cfg.FPS)
	if p.total == 0 {
		return fmt.Errorf("ролик не содержит кадров: %.2fs @ %d FPS", cfg.TotalDuration, cfg.FPS)
	}
	p.inFlight = system.MaxInFlightFrames(cfg.Width, cfg.Height)
	p.rendered.Store(0)

	if dir := filepath.Dir(cfg.OutputVideo); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	fmt.Println("--- [PROJECT: MOTION ENGINE] ---")
	fmt.Printf("[*] Сцен: %d | Длительность: %.2fs | Кадров: %d\n", len(p.Compositor.Timeline.Slots), cfg.TotalDuration, p.total)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Потоки: %d | Режим: %s\n", cfg.Width, cfg.Height, cfg.FPS, p.workers(), cfg.Mode)
	fmt.Printf("[*] Кодек: %s (качество %d) | Кадров в памяти: до %d\n", cfg.VideoEncoder, cfg.Quality, p.inFlight)
	fmt.Println("-----------------------------")

	var concatTime time.Duration
	var err error
	switch cfg.Mode {
	case config.ModeStream:
		err = p.runStream(ctx)
	default:
		concatTime, err = p.runSegments(ctx)
	}
	if err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Printf("[!] Не удалось записать метрики %s: %v", cfg.MetricsFile, err)
		}
	}

	if cfg.ShowStats {
		p.report(time.Since(startTime), concatTime)
	}
	return nil
}

func (p *VideoProject) workers() int {
	if p.Config.Workers > 0 {
		return p.Config.Workers
	}
	return 1
}

func (p *VideoProject) segmentParams(r FrameRange, index int) config.SegmentParams {
	return config.SegmentParams{
		Width:      p.Config.Width,
		Height:     p.Config.Height,
		FPS:        p.Config.FPS,
		FirstFrame: r.First,
		Frames:     r.Count,
		Index:      index,
	}
}

// runStream feeds one encoder with all frames, rendering batches in parallel.
func (p *VideoProject) runStream(ctx context.Context) error {
	_, err := p.encodeRange(ctx, p.segmentParams(FrameRange{Count: p.total}, 0), p.Config.OutputVideo, p.workers(), p.inFlight)
	return err
}

// runSegments encodes disjoint frame ranges concurrently and joins them in
// timestamp order.
func (p *VideoProject) runSegments(ctx context.Context) (time.Duration, error) {
	var err error
	p.tempDir, err = os.MkdirTemp("", "motion2video_")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(p.tempDir)

	parts := p.Config.Segments
	if parts <= 0 {
		parts = p.workers()
	}
	ranges := SplitFrames(p.total, parts)

	concurrent := min(p.workers(), len(ranges))
	renderWorkers := max(1, p.workers()/concurrent)
	budget := max(2, p.inFlight/concurrent)

	results := make([]string, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrent)
	for i, r := range ranges {
		g.Go(func() error {
			segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%03d.mp4", i))
			luma, err := p.encodeRange(gctx, p.segmentParams(r, i), segPath, renderWorkers, budget)
			if err != nil {
				return fmt.Errorf("сегмент %d: %w", i, err)
			}
			metrics.SegmentsEncoded.Inc()
			results[i] = segPath
			fmt.Printf("[>] Ready: %d/%d (кадры %d-%d, яркость %.1f)\n", i+1, len(ranges), r.First, r.First+r.Count-1, luma)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	fmt.Println("[*] Сборка финального видео...")
	concatStart := time.Now()
	if err := p.Encoder.Concatenate(ctx, results, p.Config.OutputVideo, p.tempDir); err != nil {
		return 0, fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	return time.Since(concatStart), nil
}

// encodeRange renders the frames of seg and pipes them into one encoder run.
// It returns the mean luma of the last frame.
func (p *VideoProject) encodeRange(ctx context.Context, seg config.SegmentParams, path string, workers, budget int) (float64, error) {
	batch := min(workers*2, max(1, budget/2))
	frames := make(chan *image.RGBA, max(1, budget-batch))

	var luma float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(frames)
		var err error
		luma, err = p.renderRange(gctx, FrameRange{First: seg.FirstFrame, Count: seg.Frames}, workers, batch, frames)
		return err
	})
	g.Go(func() error {
		n, err := p.Encoder.EncodeFrames(gctx, frames, path, seg, p.Config.VideoEncoder, p.Config.Quality)
		metrics.FramesEncoded.Add(float64(n))
		if err != nil {
			metrics.EncodeErrors.Inc()
		}
		return err
	})
	return luma, g.Wait()
}

// renderRange renders r in batches of up to batch frames and sends them to
// out in timestamp order.
func (p *VideoProject) renderRange(ctx context.Context, r FrameRange, workers, batch int, out chan<- *image.RGBA) (float64, error) {
	bounds := p.Compositor.Bounds()
	buf := make([]*image.RGBA, batch)
	release := func(imgs []*image.RGBA) {
		for i, img := range imgs {
			if img != nil {
				p.Pool.Put(img)
				imgs[i] = nil
			}
		}
	}

	var luma float64
	end := r.First + r.Count
	for start := r.First; start < end; start += batch {
		n := min(batch, end-start)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				buf[i] = p.renderFrame(start+i, bounds)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			release(buf[:n])
			return luma, err
		}
		if start+n == end {
			luma = analyzer.MeanLuma(buf[n-1])
		}

		for i := 0; i < n; i++ {
			select {
			case out <- buf[i]:
				buf[i] = nil
			case <-ctx.Done():
				release(buf[i:n])
				return luma, ctx.Err()
			}
		}
		p.progress(n)
	}
	return luma, nil
}

func (p *VideoProject) renderFrame(index int, bounds image.Rectangle) *image.RGBA {
	img := p.Pool.Get(bounds)
	begin := time.Now()
	f := p.Compositor.RenderInto(img, timeline.FrameTime(index, p.Config.FPS))
	if m := f.Index(); m < len(p.scenes) {
		p.scenes[m].Rendered.Inc()
		p.scenes[m].Duration.Observe(time.Since(begin).Seconds())
	}
	return img
}

// progress prints a line every 10% of the clip.
func (p *VideoProject) progress(n int) {
	done := int(p.rendered.Add(int64(n)))
	step := max(1, p.total/10)
	if done/step != (done-n)/step || done == p.total {
		fmt.Printf("[>] Кадров: %d/%d\n", done, p.total)
	}
}

// RenderStill composites the single frame at t.
func (p *VideoProject) RenderStill(t float64) *image.RGBA {
	return p.Compositor.Render(t)
}
