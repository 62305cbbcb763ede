package batticon

import (
	"image/color"
	"strconv"

	"github.com/esimov/batticon/utils"
)

// Mode is the rendering style of an icon, derived from the percentage.
type Mode int

const (
	// ModeColor draws a white numeral over a severity colored background.
	ModeColor Mode = iota
	// ModeTemplate punches the numeral out of a solid background, leaving the
	// host platform free to tint the remaining opaque pixels.
	ModeTemplate
)

// Percentage thresholds separating the render modes and severity colors.
const (
	TemplateAbove     = 50
	CriticalAtOrBelow = 20
	MaxPercentage     = 100
)

var (
	// ColorCritical is the background of color mode icons at or below CriticalAtOrBelow.
	ColorCritical = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	// ColorLow is the background of the remaining color mode icons.
	ColorLow = color.NRGBA{R: 255, G: 120, B: 0, A: 255}
	// ColorGlyph is the numeral color in both modes.
	ColorGlyph = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func (m Mode) String() string {
	switch m {
	case ModeTemplate:
		return "template"
	case ModeColor:
		return "color"
	}
	return "unknown"
}

// Clamp maps out of range percentages onto the valid domain.
// Anything above MaxPercentage renders as a full battery.
func Clamp(percentage uint8) uint8 {
	return utils.Min(percentage, MaxPercentage)
}

// ModeFor returns the render mode used for the percentage.
func ModeFor(percentage uint8) Mode {
	if Clamp(percentage) > TemplateAbove {
		return ModeTemplate
	}
	return ModeColor
}

// BackgroundFor returns the severity color for a color mode icon.
// The result is meaningless for template mode percentages.
func BackgroundFor(percentage uint8) color.NRGBA {
	if Clamp(percentage) <= CriticalAtOrBelow {
		return ColorCritical
	}
	return ColorLow
}

// Text returns the string drawn on the icon: the decimal digits of the percentage.
func Text(percentage uint8) string {
	return strconv.Itoa(int(Clamp(percentage)))
}
