package batticon

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/esimov/batticon/imop"
	"github.com/esimov/batticon/utils"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Layout constants. The sizes and offsets are tuned by eye for the
// one, two and three digit numerals on the fixed icon canvas; they
// are not derived from the font's vertical metrics.
const (
	// IconSize is the side length of the square icon, in pixels.
	IconSize = 44

	// FontSize is the pixel scale of one and two digit numerals.
	FontSize = 36.0
	// FontSizeFull is the smaller pixel scale used for 100,
	// so that the three digits still fit the canvas width.
	FontSizeFull = 30.0

	// TopOffset is the distance between the canvas top and the text line top.
	TopOffset = 3
	// TopOffsetFull moves the smaller 100 glyphs down to keep them vertically centered.
	TopOffsetFull = 6
)

// Cutout is the way template mode icons punch the numeral out of the fill.
type Cutout string

const (
	// CutoutHard clears every pixel touched by the glyph, however faintly.
	CutoutHard Cutout = "hard"
	// CutoutSoft removes alpha in proportion to the glyph coverage,
	// keeping anti-aliased edges.
	CutoutSoft Cutout = "soft"
)

// op returns the composition operator implementing the cutout.
// Anything other than CutoutSoft is a hard stencil.
func (c Cutout) op() string {
	if c == CutoutSoft {
		return imop.DstOut
	}
	return imop.Stencil
}

// Layout describes where and how the numeral is drawn on the canvas.
type Layout struct {
	Text     string
	FontSize float64 // pixel scale: the ascender to descender distance
	EmSize   float64 // equivalent em size passed to the rasterizer
	Width    float64 // summed glyph advances, in pixels
	Origin   image.Point
}

// Renderer draws battery percentage icons. It holds configuration only;
// every call starts from scratch, so a Renderer is safe for concurrent use.
type Renderer struct {
	// Fonts supplies the numeral typeface. Nil means the embedded font.
	Fonts FontSource
	// TemplateFill is the background of template icons. Its alpha is
	// ignored, the fill is always drawn opaque. The zero value selects
	// DefaultTemplateFill.
	TemplateFill color.NRGBA
	// Cutout is either CutoutHard or CutoutSoft. Empty means CutoutHard.
	Cutout Cutout
}

// NewRenderer returns a Renderer with the platform defaults.
func NewRenderer(fonts FontSource) *Renderer {
	return &Renderer{
		Fonts:        fonts,
		TemplateFill: DefaultTemplateFill(),
		Cutout:       CutoutHard,
	}
}

// FontSizeFor returns the pixel scale used for the percentage.
func FontSizeFor(percentage uint8) float64 {
	if Clamp(percentage) == MaxPercentage {
		return FontSizeFull
	}
	return FontSize
}

// TopOffsetFor returns the vertical text origin used for the percentage.
func TopOffsetFor(percentage uint8) int {
	if Clamp(percentage) == MaxPercentage {
		return TopOffsetFull
	}
	return TopOffset
}

// Render returns the PNG encoded icon for the percentage.
// Percentages above 100 are clamped.
func (r *Renderer) Render(percentage uint8) ([]byte, error) {
	img, err := r.Icon(percentage)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Layout computes the text placement for the percentage without drawing it.
func (r *Renderer) Layout(percentage uint8) (Layout, error) {
	f, err := loadFont(r.Fonts)
	if err != nil {
		return Layout{}, err
	}
	face, lay, err := newFace(f, Clamp(percentage))
	if err != nil {
		return Layout{}, err
	}
	face.Close()

	return lay, nil
}

// Icon returns the unencoded icon canvas for the percentage.
func (r *Renderer) Icon(percentage uint8) (*image.NRGBA, error) {
	p := Clamp(percentage)

	f, err := loadFont(r.Fonts)
	if err != nil {
		return nil, err
	}
	face, lay, err := newFace(f, p)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	canvas := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))

	switch ModeFor(p) {
	case ModeTemplate:
		fill(canvas, r.templateFill())

		// The glyph goes to a scratch canvas first; its alpha
		// channel is then used as a stencil over the background.
		glyphs := image.NewNRGBA(canvas.Bounds())
		drawText(glyphs, face, lay)

		op := imop.InitOp()
		op.Set(r.Cutout.op())
		op.Draw(&imop.Bitmap{Img: canvas}, glyphs, canvas)
	default:
		fill(canvas, BackgroundFor(p))
		drawText(canvas, face, lay)
	}

	return canvas, nil
}

func (r *Renderer) templateFill() color.NRGBA {
	if r.TemplateFill == (color.NRGBA{}) {
		return DefaultTemplateFill()
	}
	c := r.TemplateFill
	c.A = 0xff
	return c
}

// newFace creates the font face for the percentage and lays out its text.
// The caller must close the returned face.
func newFace(f *opentype.Font, percentage uint8) (font.Face, Layout, error) {
	lay := Layout{
		Text:     Text(percentage),
		FontSize: FontSizeFor(percentage),
	}

	em, err := pxScaleToEm(f, lay.FontSize)
	if err != nil {
		return nil, Layout{}, err
	}
	lay.EmSize = em

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    em,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, Layout{}, errors.Wrapf(ErrFontUnavailable, "create font face: %v", err)
	}

	var width fixed.Int26_6
	for _, c := range lay.Text {
		adv, ok := face.GlyphAdvance(c)
		if !ok {
			face.Close()
			return nil, Layout{}, errors.Wrapf(ErrFontUnavailable, "font has no glyph for %q", c)
		}
		width += adv
	}
	lay.Width = float64(width) / 64

	lay.Origin = image.Point{
		X: int(math.Floor(utils.Max(0.0, (IconSize-lay.Width)/2))),
		Y: TopOffsetFor(percentage),
	}
	return face, lay, nil
}

// pxScaleToEm converts a pixel scale, the height from the lowest descender
// to the highest ascender, into the em size expected by the rasterizer.
func pxScaleToEm(f *opentype.Font, px float64) (float64, error) {
	var buf sfnt.Buffer

	upem := f.UnitsPerEm()
	m, err := f.Metrics(&buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return 0, errors.Wrapf(ErrFontUnavailable, "font metrics: %v", err)
	}
	height := float64(m.Ascent+m.Descent) / 64
	if height <= 0 {
		return px, nil
	}
	return px * float64(upem) / height, nil
}

// drawText draws the numeral in ColorGlyph, with the text line top at lay.Origin.
func drawText(dst draw.Image, face font.Face, lay Layout) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ColorGlyph),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(lay.Origin.X),
			Y: fixed.I(lay.Origin.Y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(lay.Text)
}

// fill paints the whole canvas with a single color.
func fill(dst *image.NRGBA, c color.NRGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
