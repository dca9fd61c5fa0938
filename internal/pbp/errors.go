package pbp

import "errors"

// Reconstruction failures that come back with an empty Timeline. Callers are
// expected to fall back to a box-score estimate when they see one of these.
var (
	ErrUnsupportedFormat = errors.New("play-by-play logged in unsupported format")
	ErrInsufficientData  = errors.New("play-by-play not logged")
	ErrNoPeriods         = errors.New("no period tables")
)
