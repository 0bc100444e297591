// Package analyzer measures rendered frames: overall brightness and the
// regions where content was drawn.
package analyzer

import (
	"image"
	"image/color"
)

// Stats summarizes the luminance of a frame on a 0-255 scale.
type Stats struct {
	Mean float64
	Max  uint8
	Lit  float64 // share of pixels brighter than LitThreshold
}

// LitThreshold separates drawn content from the dark background.
const LitThreshold = 48

// Luminance computes Rec. 601 luma statistics of img.
func Luminance(img image.Image) Stats {
	gray := toGrayscale(img)
	b := gray.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return Stats{}
	}

	var sum, lit int
	var maxY uint8
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		for _, v := range row {
			sum += int(v)
			if v > maxY {
				maxY = v
			}
			if v > LitThreshold {
				lit++
			}
		}
	}
	return Stats{
		Mean: float64(sum) / float64(n),
		Max:  maxY,
		Lit:  float64(lit) / float64(n),
	}
}

// MeanLuma is a shortcut for Luminance(img).Mean.
func MeanLuma(img image.Image) float64 {
	return Luminance(img).Mean
}

// toGrayscale converts an image to grayscale. RGBA rasters take a direct path.
func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < bounds.Dy(); y++ {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+bounds.Dx()*4]
			dst := gray.Pix[y*gray.Stride : y*gray.Stride+bounds.Dx()]
			for x := range dst {
				r, g, b := uint32(src[x*4]), uint32(src[x*4+1]), uint32(src[x*4+2])
				// same weights as color.GrayModel
				dst[x] = uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
			}
		}
		return gray
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}
