package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("unknown player token")

// Player is the owner of a cell, a sub-board or the whole game.
type Player uint8

const (
	PlayerNone Player = iota
	PlayerX
	PlayerO
)

const (
	tokenX    = "X"
	tokenO    = "O"
	tokenNone = "NONE"
)

// Opposite returns the other mark. PlayerNone maps to itself.
func (that Player) Opposite() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return PlayerNone
	}
}

func (that Player) String() string {
	switch that {
	case PlayerX:
		return tokenX
	case PlayerO:
		return tokenO
	default:
		return tokenNone
	}
}

func (that Player) IsNone() bool {
	return that == PlayerNone
}

// ParsePlayer - converts a save-file token back into a Player.
func ParsePlayer(token string) (Player, error) {
	switch token {
	case tokenX:
		return PlayerX, nil
	case tokenO:
		return PlayerO, nil
	case tokenNone:
		return PlayerNone, nil
	default:
		return PlayerNone, fmt.Errorf("%w: %q", ErrUnknownPlayer, token)
	}
}
