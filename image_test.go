package batticon

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "RGBA",
			img:  makeRGBAImage(rect, colors),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.img.Bounds()
			dst := imgToNRGBA(tc.img)
			assert.Equal(t, image.Pt(0, 0), dst.Bounds().Min)

			for y := r.Min.Y; y < r.Max.Y; y++ {
				got := readRow(dst, y-r.Min.Y)
				want := readRow(tc.img, y)
				if !compareBytes(got, want, 1) {
					t.Errorf("horizontal line (y=%d): got %v want %v", y, got, want)
				}
			}
		})
	}
}

func TestImage_DecodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	fill(src, ColorLow)
	src.SetNRGBA(3, 4, color.NRGBA{})

	var buf bytes.Buffer
	assert.NoError(Encode(&buf, src))

	img, err := Decode(buf.Bytes())
	assert.NoError(err)
	assert.Equal(src.Bounds(), img.Bounds())
	assert.Equal(src.Pix, img.Pix)
}

func TestImage_DecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestImage_EncodeBMPFile(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	fill(src, ColorCritical)

	path := filepath.Join(t.TempDir(), "icon.bmp")
	f, err := os.Create(path)
	assert.NoError(err)
	assert.NoError(Encode(f, src))
	assert.NoError(f.Close())

	f, err = os.Open(path)
	assert.NoError(err)
	defer f.Close()

	img, err := bmp.Decode(f)
	assert.NoError(err)
	assert.Equal(IconSize, img.Bounds().Dx())
	assert.Equal(IconSize, img.Bounds().Dy())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestImage_EncodeError(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	fill(src, ColorLow)

	err := Encode(failingWriter{}, src)
	assert.True(errors.Is(err, ErrEncode))
	assert.Contains(err.Error(), "disk full")

	path := filepath.Join(t.TempDir(), "icon.bmp")
	assert.NoError(os.WriteFile(path, nil, 0644))
	f, err := os.Open(path)
	assert.NoError(err)
	assert.NoError(f.Close())

	err = Encode(f, src)
	assert.True(errors.Is(err, ErrEncode))
	assert.Contains(err.Error(), "bmp")
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func makeRGBAImage(rect image.Rectangle, colors []color.Color) *image.RGBA {
	img := image.NewRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = 0xff
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i%len(colorsNRGBA)])
			i++
		}
	}
}

func readRow(img image.Image, y int) []uint8 {
	row := make([]byte, img.Bounds().Dx()*4)
	i := 0
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
		i += 4
	}
	return row
}

func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		d := int(a[i]) - int(b[i])
		if d < -delta || d > delta {
			return false
		}
	}
	return true
}
