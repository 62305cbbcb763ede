package batticon

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheet_Preview(t *testing.T) {
	assert := assert.New(t)
	r := NewRenderer(EmbeddedFont{})

	icon, err := r.Icon(10)
	require.NoError(t, err)
	shown := Preview(icon, ModeColor, BarLight, TintLight)
	assert.Equal(ColorCritical, shown.NRGBAAt(0, 0))

	icon, err = r.Icon(80)
	require.NoError(t, err)

	onLight := Preview(icon, ModeTemplate, BarLight, TintLight)
	onDark := Preview(icon, ModeTemplate, BarDark, TintDark)
	assert.Less(onLight.NRGBAAt(0, 0).R, uint8(100))
	assert.Equal(TintDark, onDark.NRGBAAt(0, 0))

	// Cutout pixels show the bar through the icon.
	for y := 0; y < IconSize; y++ {
		for x := 0; x < IconSize; x++ {
			if icon.NRGBAAt(x, y).A == 0 {
				assert.Equal(BarLight, onLight.NRGBAAt(x, y))
				assert.Equal(BarDark, onDark.NRGBAAt(x, y))
			}
		}
	}
}

func TestSheet_Layout(t *testing.T) {
	assert := assert.New(t)
	r := NewRenderer(EmbeddedFont{})

	const cols = 10
	sheet, err := r.Sheet(cols, 4)
	require.NoError(t, err)
	assert.Equal(SheetSize(cols), sheet.Bounds().Size())

	cw, ch := cellSize()
	at := func(p int) image.Point {
		return image.Pt(SheetPadding+(p%cols)*cw+1, SheetPadding+(p/cols)*ch+1)
	}

	pt := at(5)
	assert.Equal(ColorCritical, sheet.NRGBAAt(pt.X, pt.Y))
	pt = at(42)
	assert.Equal(ColorLow, sheet.NRGBAAt(pt.X, pt.Y))
	pt = at(100)
	assert.NotEqual(color.NRGBA{R: 128, G: 128, B: 128, A: 255}, sheet.NRGBAAt(pt.X, pt.Y))
}

func TestSheet_FontError(t *testing.T) {
	r := NewRenderer(SystemFonts{Paths: []string{"/nonexistent.ttf"}})

	_, err := r.Sheet(10, 2)
	assert.ErrorIs(t, err, ErrFontUnavailable)
}
