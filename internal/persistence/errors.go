package persistence

import (
	"errors"
	"fmt"
)

var (
	ErrMissingLine  = errors.New("missing line")
	ErrBadToken     = errors.New("bad token")
	ErrBadInteger   = errors.New("bad integer")
	ErrInconsistent = errors.New("inconsistent game state")
)

// FormatError reports where a save file stopped making sense. Match its kind with errors.Is.
type FormatError struct {
	Line int
	Err  error
}

func (that *FormatError) Error() string {
	return fmt.Sprintf("save format: line %d: %v", that.Line, that.Err)
}

func (that *FormatError) Unwrap() error {
	return that.Err
}
