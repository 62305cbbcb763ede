package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	op.Set(Stencil)
	assert.Equal(Stencil, op.Get())

	op.Set("unsupported_composite_operation")
	assert.Equal(Stencil, op.Get())

	op.Set(DstOut)
	assert.Equal(DstOut, op.Get())
}

func TestComp_Ops(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	transparent := color.NRGBA{R: 0, G: 0, B: 0, A: 0}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)

	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)
	draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

	// Pick three representative points/pixels from the generated image output.
	// Depending on the applied composition operation the colors of the
	// selected pixels should be the source color, the destination color or transparent.
	pick := func(bmp *Bitmap) (color.Color, color.Color, color.Color) {
		return bmp.Img.At(9, 0), bmp.Img.At(0, 9), bmp.Img.At(5, 5)
	}

	// SrcOver
	topRight, bottomLeft, center := pick(op.Draw(nil, source, backdrop))
	assert.EqualValues(magenta, topRight)
	assert.EqualValues(cyan, bottomLeft)
	assert.EqualValues(cyan, center)

	// SrcIn
	op.Set(SrcIn)
	topRight, bottomLeft, center = pick(op.Draw(nil, source, backdrop))
	assert.EqualValues(transparent, topRight)
	assert.EqualValues(transparent, bottomLeft)
	assert.EqualValues(cyan, center)

	// DstOut
	op.Set(DstOut)
	topRight, bottomLeft, center = pick(op.Draw(nil, source, backdrop))
	assert.EqualValues(magenta, topRight)
	assert.EqualValues(transparent, bottomLeft)
	assert.EqualValues(transparent, center)

	// Stencil
	op.Set(Stencil)
	topRight, bottomLeft, center = pick(op.Draw(nil, source, backdrop))
	assert.EqualValues(magenta, topRight)
	assert.EqualValues(transparent, bottomLeft)
	assert.EqualValues(transparent, center)
}

func TestComp_PartialCoverage(t *testing.T) {
	assert := assert.New(t)
	op := InitOp()

	rect := image.Rect(0, 0, 1, 1)
	src := image.NewNRGBA(rect)
	dst := image.NewNRGBA(rect)
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 1})
	dst.SetNRGBA(0, 0, color.NRGBA{A: 255})

	// A single unit of glyph coverage is enough for the stencil to punch a hole,
	// while the soft cutout only removes a proportional amount of alpha.
	op.Set(Stencil)
	assert.EqualValues(0, op.Draw(nil, src, dst).Img.NRGBAAt(0, 0).A)

	op.Set(DstOut)
	assert.EqualValues(254, op.Draw(nil, src, dst).Img.NRGBAAt(0, 0).A)
}

func TestComp_InPlace(t *testing.T) {
	op := InitOp()
	op.Set(Stencil)

	rect := image.Rect(0, 0, 4, 4)
	src := image.NewNRGBA(rect)
	dst := image.NewNRGBA(rect)
	draw.Draw(dst, rect, &image.Uniform{color.NRGBA{A: 255}}, image.Point{}, draw.Src)
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	op.Draw(&Bitmap{Img: dst}, src, dst)

	assert.EqualValues(t, 0, dst.NRGBAAt(1, 1).A)
	assert.EqualValues(t, 255, dst.NRGBAAt(2, 2).A)
}
