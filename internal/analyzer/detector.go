package analyzer

import "image"

// Region is a connected area of visible content in a frame.
type Region struct {
	Rect image.Rectangle
	Area int // lit pixels inside Rect
}

// Detector finds content regions in a rendered frame.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}
