package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ivlev/motion2video/internal/compositor"
	"github.com/ivlev/motion2video/internal/config"
	"github.com/ivlev/motion2video/internal/timeline"
)

func TestSplitFrames(t *testing.T) {
	tests := []struct {
		total, parts int
		want         []FrameRange
	}{
		{10, 3, []FrameRange{{0, 4}, {4, 3}, {7, 3}}},
		{720, 8, nil},
		{3, 5, []FrameRange{{0, 1}, {1, 1}, {2, 1}}},
		{5, 0, []FrameRange{{0, 5}}},
		{0, 4, nil},
	}
	for _, tt := range tests {
		got := SplitFrames(tt.total, tt.parts)

		// ranges are contiguous, ordered and cover every frame once
		next := 0
		for _, r := range got {
			if r.First != next || r.Count <= 0 {
				t.Errorf("SplitFrames(%d, %d): bad range %+v after frame %d", tt.total, tt.parts, r, next)
			}
			if d := r.Count - got[0].Count; d > 0 || d < -1 {
				t.Errorf("SplitFrames(%d, %d): unbalanced %v", tt.total, tt.parts, got)
			}
			next = r.First + r.Count
		}
		if next != tt.total {
			t.Errorf("SplitFrames(%d, %d) covers %d frames", tt.total, tt.parts, next)
		}
		if tt.want != nil && len(got) != len(tt.want) {
			t.Errorf("SplitFrames(%d, %d) = %v, want %v", tt.total, tt.parts, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("SplitFrames(%d, %d)[%d] = %+v, want %+v", tt.total, tt.parts, i, got[i], tt.want[i])
			}
		}
	}
}

// memoryEncoder keeps frame copies per output path.
type memoryEncoder struct {
	mu       sync.Mutex
	segments map[string][][]byte
	params   map[string]config.SegmentParams
	joined   [][]byte
	fail     bool
}

func newMemoryEncoder() *memoryEncoder {
	return &memoryEncoder{segments: map[string][][]byte{}, params: map[string]config.SegmentParams{}}
}

func (e *memoryEncoder) EncodeFrames(ctx context.Context, frames <-chan *image.RGBA, path string, params config.SegmentParams, encoder string, quality int) (int, error) {
	var got [][]byte
	for img := range frames {
		got = append(got, bytes.Clone(img.Pix))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return 0, errors.New("encoder broke")
	}
	e.segments[path] = got
	e.params[path] = params
	return len(got), nil
}

func (e *memoryEncoder) Concatenate(ctx context.Context, paths []string, final, tmpDir string) error {
	for _, p := range paths {
		e.joined = append(e.joined, e.segments[p]...)
	}
	e.segments[final] = e.joined
	return nil
}

func testConfig(t *testing.T, mode string) *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 64, 36
	cfg.FPS = 10
	cfg.TotalDuration = 2.4
	cfg.FadeDuration = 0.1
	cfg.OpenFade, cfg.CloseFade = 0.2, 0.3
	cfg.Workers = 3
	cfg.Mode = mode
	cfg.OutputVideo = filepath.Join(t.TempDir(), "out.mp4")
	return cfg
}

func newProject(t *testing.T, cfg *config.Config, enc *memoryEncoder) *VideoProject {
	t.Helper()
	comp, err := compositor.New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("compositor: %v", err)
	}
	return NewVideoProject(cfg, comp, enc)
}

func checkFrames(t *testing.T, p *VideoProject, got [][]byte) {
	t.Helper()
	want := timeline.FrameCount(p.Config.TotalDuration, p.Config.FPS)
	if len(got) != want {
		t.Fatalf("encoded %d frames, want %d", len(got), want)
	}
	for i, pix := range got {
		ref := p.Compositor.Render(timeline.FrameTime(i, p.Config.FPS))
		if !bytes.Equal(pix, ref.Pix) {
			t.Errorf("frame %d differs from a direct render", i)
		}
	}
}

func TestRunStream(t *testing.T) {
	enc := newMemoryEncoder()
	cfg := testConfig(t, config.ModeStream)
	p := newProject(t, cfg, enc)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	checkFrames(t, p, enc.segments[cfg.OutputVideo])
	if prm := enc.params[cfg.OutputVideo]; prm.Frames != 24 || prm.FirstFrame != 0 {
		t.Errorf("stream params = %+v", prm)
	}
}

func TestRunSegments(t *testing.T) {
	enc := newMemoryEncoder()
	cfg := testConfig(t, config.ModeSegments)
	cfg.Segments = 5
	p := newProject(t, cfg, enc)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(enc.params) != 5 {
		t.Errorf("encoded %d segments, want 5", len(enc.params))
	}
	checkFrames(t, p, enc.joined)
}

func TestRunPropagatesEncoderError(t *testing.T) {
	enc := newMemoryEncoder()
	enc.fail = true
	p := newProject(t, testConfig(t, config.ModeSegments), enc)
	if err := p.Run(context.Background()); err == nil {
		t.Error("expected the encoder error")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newProject(t, testConfig(t, config.ModeStream), newMemoryEncoder())
	if err := p.Run(ctx); err == nil {
		t.Error("expected a cancellation error")
	}
}

func TestRenderStill(t *testing.T) {
	p := newProject(t, testConfig(t, config.ModeStream), newMemoryEncoder())
	img := p.RenderStill(1.2)
	if img.Bounds() != image.Rect(0, 0, 64, 36) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}
