package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoQuickMove  = errors.New("no sub-board accepts this cell")
)
