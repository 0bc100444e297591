package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// ImageSource is a single PNG/JPEG logo exposed as a one-page source.
// The size is read once on open; dpi is ignored.
type ImageSource struct {
	path string
	cfg  image.Config
}

func NewImageSource(path string) (*ImageSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return nil, fmt.Errorf("неподдерживаемый формат %q (png, jpg, pdf)", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ImageSource{path: path, cfg: cfg}, nil
}

func (s *ImageSource) PageCount() int {
	return 1
}

func (s *ImageSource) GetPageDimensions(index int) (float64, float64, error) {
	if index != 0 {
		return 0, 0, fmt.Errorf("страница %d вне диапазона (всего 1)", index)
	}
	return float64(s.cfg.Width), float64(s.cfg.Height), nil
}

func (s *ImageSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index != 0 {
		return nil, fmt.Errorf("страница %d вне диапазона (всего 1)", index)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func (s *ImageSource) Close() error {
	return nil
}
