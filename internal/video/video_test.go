package video

import (
	"bytes"
	"context"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/motion2video/internal/config"
)

func TestBuildFFmpegArgs(t *testing.T) {
	e := &FFmpegEncoder{}
	params := config.SegmentParams{Width: 320, Height: 180, FPS: 30, Frames: 45}
	args := strings.Join(e.buildFFmpegArgs("out.mp4", params, "libx264", 23), " ")

	for _, want := range []string{
		"-f rawvideo -pixel_format rgba",
		"-video_size 320x180",
		"-framerate 30 -i -",
		"-frames:v 45",
		"-pix_fmt yuv420p -c:v libx264 -crf 23 -preset medium",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
	if !strings.HasSuffix(args, "out.mp4") {
		t.Errorf("output path must come last: %q", args)
	}
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    string
	}{
		{"h264_videotoolbox", 75, "-b:v 7500k"},
		{"h264_nvenc", 28, "-cq 28"},
		{"libx264", 18, "-crf 18 -preset medium"},
	}
	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			if got := strings.Join(QualityArgs(tt.encoder, tt.quality), " "); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPumpDrainsAndReleases(t *testing.T) {
	released := 0
	e := &FFmpegEncoder{Release: func(*image.RGBA) { released++ }}

	frames := make(chan *image.RGBA, 3)
	for i := 0; i < 3; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Pix[0] = byte(i)
		frames <- img
	}
	close(frames)

	var buf bytes.Buffer
	n, err := e.pump(context.Background(), &buf, frames)
	if err != nil || n != 3 {
		t.Fatalf("pump = %d, %v", n, err)
	}
	if buf.Len() != 3*2*2*4 {
		t.Errorf("wrote %d bytes", buf.Len())
	}
	if buf.Bytes()[16] != 1 || buf.Bytes()[32] != 2 {
		t.Error("frames were written out of order")
	}
	if released != 3 {
		t.Errorf("released %d frames, want 3", released)
	}
}

func TestPumpStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames := make(chan *image.RGBA, 2)
	frames <- image.NewRGBA(image.Rect(0, 0, 1, 1))
	frames <- image.NewRGBA(image.Rect(0, 0, 1, 1))
	close(frames)

	n, err := (&FFmpegEncoder{}).pump(ctx, &bytes.Buffer{}, frames)
	if err == nil || n != 0 {
		t.Errorf("pump after cancel = %d, %v", n, err)
	}
	if len(frames) != 0 {
		t.Error("channel must be drained")
	}
}

func TestWriteConcatList(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "inputs.txt")
	segs := []string{filepath.Join(dir, "s0.mp4"), filepath.Join(dir, "s1.mp4")}
	if err := writeConcatList(list, segs); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(list)
	want := "file '" + segs[0] + "'\nfile '" + segs[1] + "'\n"
	if string(data) != want {
		t.Errorf("list = %q, want %q", data, want)
	}
}

func TestConcatenateSingleSegmentMoves(t *testing.T) {
	dir := t.TempDir()
	seg := filepath.Join(dir, "s0.mp4")
	os.WriteFile(seg, []byte("data"), 0644)
	final := filepath.Join(dir, "final.mp4")

	if err := (&FFmpegEncoder{}).Concatenate(context.Background(), []string{seg}, final, dir); err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(final); err != nil || string(data) != "data" {
		t.Errorf("final = %q, %v", data, err)
	}
	if err := (&FFmpegEncoder{}).Concatenate(context.Background(), nil, final, dir); err == nil {
		t.Error("expected an error without segments")
	}
}

func TestEncodeFramesWithFFmpeg(t *testing.T) {
	list, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil || !strings.Contains(string(list), "libx264") {
		t.Skip("ffmpeg with libx264 not installed")
	}
	dir := t.TempDir()
	params := config.SegmentParams{Width: 64, Height: 36, FPS: 10, Frames: 5}

	frames := make(chan *image.RGBA)
	go func() {
		defer close(frames)
		for i := 0; i < params.Frames; i++ {
			frames <- image.NewRGBA(image.Rect(0, 0, params.Width, params.Height))
		}
	}()

	out := filepath.Join(dir, "seg.mp4")
	n, err := (&FFmpegEncoder{}).EncodeFrames(context.Background(), frames, out, params, "libx264", 23)
	if err != nil {
		t.Fatalf("EncodeFrames failed: %v", err)
	}
	if n != params.Frames {
		t.Errorf("wrote %d frames", n)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("no output: %v", err)
	}
}
