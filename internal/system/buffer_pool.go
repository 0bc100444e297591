package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool переиспользует кадры image.RGBA, чтобы при рендеринге тысяч
// кадров не нагружать GC. Для каждого размера кадра свой sync.Pool.
type ImagePool struct {
	pools     sync.Map // image.Rectangle -> *sync.Pool
	allocated atomic.Int64
}

func NewImagePool() *ImagePool {
	return &ImagePool{}
}

func (p *ImagePool) pool(rect image.Rectangle) *sync.Pool {
	if v, ok := p.pools.Load(rect); ok {
		return v.(*sync.Pool)
	}
	v, _ := p.pools.LoadOrStore(rect, &sync.Pool{
		New: func() any {
			p.allocated.Add(1)
			return image.NewRGBA(rect)
		},
	})
	return v.(*sync.Pool)
}

// Get returns a frame of the given bounds. Its contents are undefined; the
// compositor overwrites every pixel.
func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	return p.pool(rect).Get().(*image.RGBA)
}

// Put hands a frame back. Frames of a size never requested are dropped.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	if v, ok := p.pools.Load(img.Rect); ok {
		v.(*sync.Pool).Put(img)
	}
}

// Allocated is the number of frames created so far; the rest were reused.
func (p *ImagePool) Allocated() int64 {
	return p.allocated.Load()
}
