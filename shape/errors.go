package shape

import "errors"

var (
	ErrInvalidShape       = errors.New("invalid shape parameters")
	ErrInvalidUpdate      = errors.New("invalid shape parameters after update")
	ErrInvalidScaleFactor = errors.New("scale factor must be positive number")
	ErrUnknownKind        = errors.New("unknown shape kind")
	ErrBadSnapshot        = errors.New("bad snapshot")
)
