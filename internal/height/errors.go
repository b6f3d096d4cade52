package height

import "errors"

var (
	// ErrInvalidWindow is returned when a window's heights are not strictly
	// ordered as start < end < revealStart < revealEnd.
	ErrInvalidWindow = errors.New("invalid proposal window")

	// ErrBeforeWindow is returned when a height precedes the phase being checked.
	ErrBeforeWindow = errors.New("height before window")

	// ErrAfterWindow is returned when a height is past the phase being checked.
	ErrAfterWindow = errors.New("height after window")
)
