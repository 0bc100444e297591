package analyzer

import (
	"image"
	"math"
	"sort"
)

// BrightDetector groups pixels brighter than a threshold into regions.
type BrightDetector struct {
	Threshold uint8
	MinArea   int // regions with fewer lit pixels are dropped
	Dilate    int // radius joining glyphs of one word into one region
}

func NewBrightDetector() *BrightDetector {
	return &BrightDetector{Threshold: 96, MinArea: 20, Dilate: 2}
}

func (d *BrightDetector) Detect(img image.Image) ([]Region, error) {
	gray := toGrayscale(img)
	mask := threshold(gray, d.Threshold)
	return components(mask, dilate(mask, d.Dilate), d.MinArea), nil
}

// EdgeDetector finds regions by Sobel gradient magnitude, which also picks up
// dim shapes on a dark background.
type EdgeDetector struct {
	EdgeThreshold float64
	MinArea       int
	Dilate        int
}

func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{EdgeThreshold: 30, MinArea: 20, Dilate: 2}
}

func (d *EdgeDetector) Detect(img image.Image) ([]Region, error) {
	gray := toGrayscale(img)
	mask := sobel(gray, d.EdgeThreshold)
	return components(mask, dilate(mask, d.Dilate), d.MinArea), nil
}

// mask is a row-major boolean raster in image-local coordinates.
type mask struct {
	w, h int
	on   []bool
	off  image.Point
}

func (m *mask) at(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.w && y < m.h && m.on[y*m.w+x]
}

func newMask(b image.Rectangle) *mask {
	return &mask{w: b.Dx(), h: b.Dy(), on: make([]bool, b.Dx()*b.Dy()), off: b.Min}
}

func threshold(gray *image.Gray, level uint8) *mask {
	m := newMask(gray.Bounds())
	for y := 0; y < m.h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+m.w]
		for x, v := range row {
			m.on[y*m.w+x] = v > level
		}
	}
	return m
}

// sobel marks pixels whose gradient magnitude exceeds level.
func sobel(gray *image.Gray, level float64) *mask {
	m := newMask(gray.Bounds())
	px := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x])
	}
	for y := 1; y < m.h-1; y++ {
		for x := 1; x < m.w-1; x++ {
			gx := -px(x-1, y-1) + px(x+1, y-1) - 2*px(x-1, y) + 2*px(x+1, y) - px(x-1, y+1) + px(x+1, y+1)
			gy := -px(x-1, y-1) - 2*px(x, y-1) - px(x+1, y-1) + px(x-1, y+1) + 2*px(x, y+1) + px(x+1, y+1)
			m.on[y*m.w+x] = math.Hypot(gx, gy) > level
		}
	}
	return m
}

// dilate grows the mask by a square of the given radius.
func dilate(src *mask, radius int) *mask {
	if radius <= 0 {
		return src
	}
	out := newMask(image.Rect(0, 0, src.w, src.h))
	out.off = src.off
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			if !src.on[y*src.w+x] {
				continue
			}
			for ky := -radius; ky <= radius; ky++ {
				for kx := -radius; kx <= radius; kx++ {
					nx, ny := x+kx, y+ky
					if nx >= 0 && ny >= 0 && nx < src.w && ny < src.h {
						out.on[ny*src.w+nx] = true
					}
				}
			}
		}
	}
	return out
}

// components flood-fills the grown mask and reports, per component, the
// bounding box and pixel count of the original mask inside it.
func components(orig, grown *mask, minArea int) []Region {
	visited := make([]bool, len(grown.on))
	var regions []Region

	for start := range grown.on {
		if !grown.on[start] || visited[start] {
			continue
		}
		minX, minY := grown.w, grown.h
		maxX, maxY := -1, -1
		area := 0

		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%grown.w, i/grown.w

			if orig.on[i] {
				area++
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}

			for _, n := range [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
				if !grown.at(n[0], n[1]) {
					continue
				}
				j := n[1]*grown.w + n[0]
				if !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}

		if area < minArea || area == 0 {
			continue
		}
		rect := image.Rect(minX, minY, maxX+1, maxY+1).Add(orig.off)
		regions = append(regions, Region{Rect: rect, Area: area})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	return regions
}
