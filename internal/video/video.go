package video

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ivlev/motion2video/internal/config"
)

type VideoEncoder interface {
	EncodeFrames(ctx context.Context, frames <-chan *image.RGBA, videoPath string, params config.SegmentParams, encoderName string, quality int) (int, error)
	Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	// Binary overrides the ffmpeg executable.
	Binary string
	// Release, when set, receives every frame after it was written.
	Release func(*image.RGBA)
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return "ffmpeg"
}

// EncodeFrames writes frames in arrival order until the channel is closed and
// returns the number of frames written. The caller must deliver exactly
// params.Frames frames of params.Width x params.Height.
func (e *FFmpegEncoder) EncodeFrames(
	ctx context.Context,
	frames <-chan *image.RGBA,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) (int, error) {
	args := e.buildFFmpegArgs(videoPath, params, encoderName, quality)

	cmd := exec.CommandContext(ctx, e.binary(), args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return 0, fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("ffmpeg start error: %w", err)
	}

	// Запись raw RGBA данных
	written, writeErr := e.pump(ctx, stdin, frames)
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		if writeErr != nil {
			return written, fmt.Errorf("write raw error: %w", writeErr)
		}
		return written, fmt.Errorf("ffmpeg wait error: %w, output: %s", err, out.String())
	}
	if writeErr != nil {
		return written, fmt.Errorf("write raw error: %w", writeErr)
	}
	if written != params.Frames {
		return written, fmt.Errorf("сегмент %d: записано %d кадров из %d", params.Index, written, params.Frames)
	}
	return written, nil
}

func (e *FFmpegEncoder) pump(ctx context.Context, stdin io.Writer, frames <-chan *image.RGBA) (int, error) {
	w := bufio.NewWriterSize(stdin, 1<<20)
	written := 0
	var err error
	for img := range frames {
		if err == nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			} else {
				err = e.writeRawRGBA(w, img)
			}
			if err == nil {
				written++
			}
		}
		// the channel is always drained so producers never block
		if e.Release != nil {
			e.Release(img)
		}
	}
	if err == nil {
		err = w.Flush()
	}
	return written, err
}

func (e *FFmpegEncoder) buildFFmpegArgs(
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-frames:v", fmt.Sprintf("%d", params.Frames),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}
	args = append(args, QualityArgs(encoderName, quality)...)
	args = append(args, videoPath)
	return args
}

// QualityArgs maps the single quality knob onto the encoder's own option.
func QualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую на всех версиях. Используем битрейт.
		bitrate := quality * 100 // кбит/с. 75 -> 7.5Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func (e *FFmpegEncoder) writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// Concatenate joins segments that share codec parameters without re-encoding.
func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error {
	if len(segmentPaths) == 0 {
		return fmt.Errorf("нет сегментов для сборки")
	}
	if len(segmentPaths) == 1 {
		return moveFile(segmentPaths[0], finalPath)
	}

	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	if err := writeConcatList(concatFilePath, segmentPaths); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, e.binary(), "-y", "-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0", "-i", concatFilePath,
		"-c", "copy", "-movflags", "+faststart", finalPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
	}
	return nil
}

func writeConcatList(path string, segmentPaths []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			f.Close()
			return err
		}
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	return f.Close()
}

func moveFile(from, to string) error {
	if err := os.Rename(from, to); err == nil {
		return nil
	}
	// cross-device: copy
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(to)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
