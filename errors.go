package batticon

import "github.com/pkg/errors"

var (
	// ErrFontUnavailable is returned when no font source yields usable font data,
	// or when the data obtained cannot be parsed.
	ErrFontUnavailable = errors.New("no usable font")

	// ErrEncode is returned when the finished canvas cannot be serialized.
	// A well-formed in-memory icon should always encode, so this points to
	// an internal problem rather than a bad input.
	ErrEncode = errors.New("icon encoding failed")
)
