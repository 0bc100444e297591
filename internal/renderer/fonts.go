package renderer

import (
	"log"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontBook holds the parsed typefaces. It is read-only after construction and
// may be shared between goroutines; faces are created per Canvas because a
// font.Face is not safe for concurrent use.
type FontBook struct {
	regular *opentype.Font
	bold    *opentype.Font
}

var fallbackOnce sync.Once

// NewFontBook loads TrueType/OpenType files. A missing or broken file falls
// back to the embedded Go fonts; rendering never fails because of fonts.
func NewFontBook(regularPath, boldPath string) *FontBook {
	return &FontBook{
		regular: loadFont(regularPath, goregular.TTF),
		bold:    loadFont(boldPath, gobold.TTF),
	}
}

// DefaultFontBook uses the embedded Go fonts only.
func DefaultFontBook() *FontBook {
	return NewFontBook("", "")
}

func loadFont(path string, embedded []byte) *opentype.Font {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			f, err := opentype.Parse(data)
			if err == nil {
				return f
			}
			log.Printf("[!] Шрифт %s не распознан: %v", path, err)
		} else {
			log.Printf("[!] Шрифт %s недоступен: %v", path, err)
		}
	}

	f, err := opentype.Parse(embedded)
	if err != nil {
		fallbackOnce.Do(func() {
			log.Printf("[!] Встроенный шрифт не распознан, используется basicfont: %v", err)
		})
		return nil
	}
	return f
}

// Face builds a face at the given pixel size. If the typeface is unavailable
// the fixed 7x13 bitmap face is returned.
func (b *FontBook) Face(bold bool, px float64) font.Face {
	f := b.regular
	if bold {
		f = b.bold
	}
	if f == nil || px < 1 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
