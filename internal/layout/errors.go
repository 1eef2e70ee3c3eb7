package layout

import "errors"

var (
	// ErrOutOfRange means a source offset lies outside [0, Total].
	ErrOutOfRange = errors.New("source position out of range")
	// ErrInvalidGridPosition means a column or row lies outside the grid.
	ErrInvalidGridPosition = errors.New("invalid grid position")
)
