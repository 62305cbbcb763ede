// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination
// and source operators; this package covers the ones needed to punch
// glyph cutouts into template icons and to preview them the way a host
// platform tints and layers them.
package imop

import (
	"image"
	"image/color"

	"github.com/esimov/batticon/utils"
)

const (
	SrcOver = "src_over"
	SrcIn   = "src_in"
	DstOut  = "dst_out"
	Stencil = "stencil"
)

// Bitmap holds the result of a composite operation.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operator.
type Composite struct {
	current string
	ops     []string
}

// NewBitmap creates a transparent bitmap of the given bounds.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new composite operation. SrcOver is the default one.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			SrcOver,
			SrcIn,
			DstOut,
			Stencil,
		},
	}
}

// Set activates one of the supported composition operators.
// Unknown operators are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// Draw combines src with dst and stores the result into bitmap.
// The bitmap may share its image with dst, in which case dst is
// updated in place. A nil bitmap allocates a new one.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA) *Bitmap {
	if bitmap == nil {
		bitmap = NewBitmap(dst.Bounds())
	}
	rect := dst.Bounds().Intersect(src.Bounds()).Intersect(bitmap.Img.Bounds())

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			d := dst.NRGBAAt(x, y)
			bitmap.Img.SetNRGBA(x, y, op.apply(s, d))
		}
	}
	return bitmap
}

// apply runs the active operator over a single pair of pixels.
func (op *Composite) apply(s, d color.NRGBA) color.NRGBA {
	switch op.current {
	case Stencil:
		if s.A > 0 {
			return color.NRGBA{}
		}
		return d
	}

	as := float64(s.A) / 255
	ab := float64(d.A) / 255

	// fs and fb are the Porter-Duff fractions of source and backdrop.
	var fs, fb float64
	switch op.current {
	case SrcOver:
		fs, fb = 1, 1-as
	case SrcIn:
		fs, fb = ab, 0
	case DstOut:
		fs, fb = 0, 1-as
	}

	ao := as*fs + ab*fb
	if ao <= 0 {
		return color.NRGBA{}
	}

	mix := func(cs, cb uint8) uint8 {
		v := (as*fs*float64(cs) + ab*fb*float64(cb)) / ao
		return uint8(utils.Clamp(v+0.5, 0, 255))
	}

	return color.NRGBA{
		R: mix(s.R, d.R),
		G: mix(s.G, d.G),
		B: mix(s.B, d.B),
		A: uint8(utils.Clamp(ao*255+0.5, 0, 255)),
	}
}
