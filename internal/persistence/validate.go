package persistence

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

// Validate recomputes what the trusting decoder takes on faith and reports the first disagreement.
func Validate(game *entity.Game) error {
	var marks [3]int

	for sb := range entity.BoardSize {
		cells := game.SubBoard(sb)
		for _, owner := range cells {
			marks[owner]++
		}

		if stored, computed := game.SubBoardWinner(sb), entity.LineWinner(cells); stored != computed {
			return fmt.Errorf("%w: sub-board %d winner is %s, cells say %s", ErrInconsistent, sb, stored, computed)
		}
	}

	turn := game.CurrentPlayer()
	if turn == entity.PlayerNone {
		return fmt.Errorf("%w: no current player", ErrInconsistent)
	}

	target := game.Target()
	winner := game.Winner()

	switch {
	case winner != entity.PlayerNone && !target.IsGameOver():
		return fmt.Errorf("%w: %s won but target is %s", ErrInconsistent, winner, target)
	case winner == entity.PlayerNone && target.IsGameOver():
		return fmt.Errorf("%w: target is game over without a winner", ErrInconsistent)
	}

	if sb, forced := target.SubBoard(); forced && game.IsSubBoardDecided(sb) {
		return fmt.Errorf("%w: forced sub-board %d is already decided", ErrInconsistent, sb)
	}

	// X moves first; the turn passes after every move except the winning one.
	xMoves, oMoves := marks[entity.PlayerX], marks[entity.PlayerO]
	xToMove := xMoves == oMoves
	if winner != entity.PlayerNone {
		xToMove = xMoves == oMoves+1
	}

	switch {
	case xMoves != oMoves && xMoves != oMoves+1:
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInconsistent, xMoves, oMoves)
	case xToMove != (turn == entity.PlayerX):
		return fmt.Errorf("%w: %s to move with %d X and %d O marks", ErrInconsistent, turn, xMoves, oMoves)
	}

	return nil
}
