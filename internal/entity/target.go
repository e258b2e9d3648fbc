package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidTarget = errors.New("invalid target code")

const (
	codeFree     = -1
	codeGameOver = -2
)

type targetKind uint8

const (
	targetFree targetKind = iota
	targetForced
	targetGameOver
)

// Target says where the next mark may go: any undecided sub-board, one forced sub-board, or nowhere.
type Target struct {
	kind  targetKind
	index int
}

func Free() Target {
	return Target{kind: targetFree}
}

// Forced panics on an index outside 0..8; callers pass a computed sub-board index.
func Forced(subBoard int) Target {
	if !validIndex(subBoard) {
		panic(fmt.Sprintf("forced sub-board out of range: %d", subBoard))
	}

	return Target{kind: targetForced, index: subBoard}
}

func Finished() Target {
	return Target{kind: targetGameOver}
}

func (that Target) IsFree() bool {
	return that.kind == targetFree
}

func (that Target) IsGameOver() bool {
	return that.kind == targetGameOver
}

// SubBoard returns the forced sub-board and true, or false when the target is not Forced.
func (that Target) SubBoard() (int, bool) {
	if that.kind != targetForced {
		return 0, false
	}

	return that.index, true
}

// Allows reports whether a move into subBoard respects the target.
func (that Target) Allows(subBoard int) bool {
	switch that.kind {
	case targetFree:
		return true
	case targetForced:
		return that.index == subBoard
	default:
		return false
	}
}

// Code - integer form used by the save format: -2 game over, -1 free, 0..8 forced.
func (that Target) Code() int {
	switch that.kind {
	case targetForced:
		return that.index
	case targetGameOver:
		return codeGameOver
	default:
		return codeFree
	}
}

func TargetFromCode(code int) (Target, error) {
	switch {
	case code == codeFree:
		return Free(), nil
	case code == codeGameOver:
		return Finished(), nil
	case validIndex(code):
		return Forced(code), nil
	default:
		return Target{}, fmt.Errorf("%w: %d", ErrInvalidTarget, code)
	}
}

func (that Target) String() string {
	switch that.kind {
	case targetForced:
		return fmt.Sprintf("forced(%d)", that.index)
	case targetGameOver:
		return "game over"
	default:
		return "free"
	}
}
