package engine

import "errors"

// InvalidMoveError is the recoverable rejection of a move request. The
// engine state is untouched when one is returned; the Reason string is
// meant for direct display by the presentation layer.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}

// IsInvalidMove reports whether err is a rejected move rather than an
// engine failure.
func IsInvalidMove(err error) bool {
	var ime *InvalidMoveError
	return errors.As(err, &ime)
}
