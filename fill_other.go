//go:build !darwin

package batticon

import "image/color"

// DefaultTemplateFill returns the solid background of template icons.
// Hosts without template image support show the icon as is, so the
// numeral cutout is punched out of an opaque black square.
func DefaultTemplateFill() color.NRGBA {
	return color.NRGBA{A: 255}
}
