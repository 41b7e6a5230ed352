package pixel

import "errors"

var (
	ErrInvalidDimensions = errors.New("pixel: width and height must be positive")
	ErrOutOfBounds       = errors.New("pixel: coordinate or index out of bounds")
	ErrEmptyPalette      = errors.New("pixel: palette has no selectable colors")
)
