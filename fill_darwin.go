//go:build darwin

package batticon

import "image/color"

// DefaultTemplateFill returns the solid background of template icons.
// The macOS menu bar re-tints template images, and an opaque white fill
// keeps the icon readable before the tint is applied.
func DefaultTemplateFill() color.NRGBA {
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}
