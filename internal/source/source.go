// Package source loads the brand artwork painted by the scenes: a raster
// image or the first page of a PDF.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/motion2video/internal/system"
)

// Source is a paged collection of artwork.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	return f.doc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

// Open picks the source implementation by extension.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

// LogoExts are the file types accepted as brand logo.
var LogoExts = []string{".png", ".jpg", ".jpeg", ".pdf"}

// LoadLogo renders the first page of path. When path is a directory the most
// recently modified logo file in it is used.
func LoadLogo(path string, dpi int) (image.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		path, err = system.FindLatest(path, LogoExts...)
		if err != nil {
			return nil, err
		}
	}

	src, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("логотип %s: %w", path, err)
	}
	defer src.Close()

	if src.PageCount() == 0 {
		return nil, fmt.Errorf("логотип %s: нет страниц", path)
	}
	img, err := src.RenderPage(0, dpi)
	if err != nil {
		return nil, fmt.Errorf("логотип %s: %w", path, err)
	}
	return img, nil
}
