package scenes

import (
	"fmt"
	"image"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Assets are decoded once before rendering and only read afterwards.
type Assets struct {
	Logo image.Image
	QR   [][]bool
}

// NewAssets prepares the brand logo and encodes url as a QR matrix. An empty
// url yields no QR code.
func NewAssets(logo image.Image, url string) (*Assets, error) {
	a := &Assets{Logo: logo}
	if url == "" {
		return a, nil
	}
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code for %s: %w", url, err)
	}
	a.QR = q.Bitmap()
	return a, nil
}
