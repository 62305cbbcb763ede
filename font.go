package batticon

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/esimov/batticon/utils"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontSource supplies the raw font data used to draw the numerals.
type FontSource interface {
	FontData() ([]byte, error)
}

// EmbeddedFont serves font data compiled into the binary.
// The zero value serves the Go Bold typeface.
type EmbeddedFont struct {
	Data []byte
}

// FontData implements FontSource.
func (e EmbeddedFont) FontData() ([]byte, error) {
	if len(e.Data) > 0 {
		return e.Data, nil
	}
	return gobold.TTF, nil
}

func (e EmbeddedFont) String() string { return "embedded" }

// FontFile serves the font stored at a single path.
type FontFile string

// FontData implements FontSource.
func (f FontFile) FontData() ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, errors.Wrapf(ErrFontUnavailable, "read %s: %v", string(f), err)
	}
	return data, nil
}

func (f FontFile) String() string { return string(f) }

// SystemFonts probes a list of absolute font paths in order and serves
// the first file that can be read. An empty Paths probes the defaults
// of the running platform.
type SystemFonts struct {
	Paths []string
}

// FontData implements FontSource.
func (s SystemFonts) FontData() ([]byte, error) {
	paths := s.Paths
	if len(paths) == 0 {
		paths = DefaultSystemFontPaths(runtime.GOOS)
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return data, nil
		}
	}
	return nil, errors.Wrapf(ErrFontUnavailable, "none of %d system font paths is readable", len(paths))
}

func (s SystemFonts) String() string { return "system" }

// FontChain tries each source in turn and serves the first successful one.
type FontChain []FontSource

// FontData implements FontSource.
func (c FontChain) FontData() ([]byte, error) {
	var last error = ErrFontUnavailable
	for _, src := range c {
		data, err := src.FontData()
		if err == nil {
			return data, nil
		}
		last = err
	}
	return nil, last
}

func (c FontChain) String() string {
	names := make([]string, 0, len(c))
	for _, src := range c {
		names = append(names, fmt.Sprint(src))
	}
	return strings.Join(names, ",")
}

// DefaultSystemFontPaths returns the bold sans-serif fonts commonly
// installed on the given platform, in order of preference.
func DefaultSystemFontPaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
			"/Library/Fonts/Arial Bold.ttf",
			"/System/Library/Fonts/SFNS.ttf",
			"/System/Library/Fonts/Helvetica.ttc",
		}
	case "windows":
		return []string{
			`C:\Windows\Fonts\segoeuib.ttf`,
			`C:\Windows\Fonts\arialbd.ttf`,
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
			"/usr/share/fonts/liberation-sans/LiberationSans-Bold.ttf",
			"/usr/share/fonts/noto/NotoSans-Bold.ttf",
		}
	}
}

// loadFont fetches the font data from src and parses it.
// Font collections resolve to their first face.
func loadFont(src FontSource) (*opentype.Font, error) {
	if src == nil {
		src = EmbeddedFont{}
	}
	data, err := src.FontData()
	if err != nil {
		if errors.Is(err, ErrFontUnavailable) {
			return nil, err
		}
		return nil, errors.Wrap(ErrFontUnavailable, err.Error())
	}

	if utils.DetectContentType(data) == "font/collection" {
		c, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, errors.Wrapf(ErrFontUnavailable, "parse font collection: %v", err)
		}
		f, err := c.Font(0)
		if err != nil {
			return nil, errors.Wrapf(ErrFontUnavailable, "font collection: %v", err)
		}
		return f, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(ErrFontUnavailable, "parse font: %v", err)
	}
	return f, nil
}
