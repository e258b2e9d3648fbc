package entity

import (
	"fmt"
	"slices"
)

// BoardSize is the number of sub-boards, and also the number of cells in each sub-board.
const BoardSize = 9

const lineSize = 3

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Position addresses one cell of the meta-board.
type Position struct {
	SubBoard int `json:"sub_board"`
	Row      int `json:"row"`
	Col      int `json:"col"`
}

// Cell returns the index of the position inside its sub-board, 0..8.
func (that Position) Cell() int {
	return that.Row*lineSize + that.Col
}

// Game is the whole Ultimate Tic-Tac-Toe state. The zero value is not ready for use, call NewGame.
type Game struct {
	cells   [BoardSize * BoardSize]Player
	winners [BoardSize]Player
	turn    Player
	target  Target
	moves   []string
}

func NewGame() *Game {
	game := &Game{}
	game.Reset()

	return game
}

// Reset clears the board, gives the first turn to X and frees the target.
func (that *Game) Reset() {
	that.cells = [BoardSize * BoardSize]Player{}
	that.winners = [BoardSize]Player{}
	that.turn = PlayerX
	that.target = Free()
	that.moves = nil
}

// MakeMove places the current player's mark. It returns false and leaves the game untouched when the move is illegal.
func (that *Game) MakeMove(subBoard, row, col int) bool {
	if !that.CanPlay(subBoard, row, col) {
		return false
	}

	mover := that.turn
	that.cells[cellIndex(subBoard, row, col)] = mover
	that.winners[subBoard] = LineWinner(that.SubBoard(subBoard))

	if that.Winner() != PlayerNone {
		that.target = Finished()
	} else {
		next := row*lineSize + col
		if that.IsSubBoardDecided(next) {
			that.target = Free()
		} else {
			that.target = Forced(next)
		}
		that.turn = mover.Opposite()
	}

	that.moves = append(that.moves, formatMove(mover, subBoard, row*lineSize+col))

	return true
}

// QuickMove plays cell 0..8 in the forced sub-board, or in the first undecided sub-board where that cell is empty.
func (that *Game) QuickMove(cell int) bool {
	if !validIndex(cell) || that.IsGameOver() {
		return false
	}

	row, col := cell/lineSize, cell%lineSize

	subBoard, forced := that.target.SubBoard()
	if !forced {
		if !that.target.IsFree() {
			return false
		}

		subBoard = -1
		for sb := range BoardSize {
			if that.winners[sb] == PlayerNone && that.cells[cellIndex(sb, row, col)] == PlayerNone {
				subBoard = sb
				break
			}
		}

		if subBoard < 0 {
			return false
		}
	}

	return that.MakeMove(subBoard, row, col)
}

// CanPlay reports whether MakeMove would accept the move.
func (that *Game) CanPlay(subBoard, row, col int) bool {
	switch {
	case !validIndex(subBoard), !validLine(row), !validLine(col):
		return false
	case that.turn == PlayerNone:
		return false
	case that.IsGameOver():
		return false
	case that.winners[subBoard] != PlayerNone:
		return false
	case that.cells[cellIndex(subBoard, row, col)] != PlayerNone:
		return false
	default:
		return that.target.Allows(subBoard)
	}
}

// LegalMoves lists every cell the current player may take, in board order.
func (that *Game) LegalMoves() []Position {
	var positions []Position

	for sb := range BoardSize {
		for row := range lineSize {
			for col := range lineSize {
				if that.CanPlay(sb, row, col) {
					positions = append(positions, Position{SubBoard: sb, Row: row, Col: col})
				}
			}
		}
	}

	return positions
}

func (that *Game) IsGameOver() bool {
	return that.Winner() != PlayerNone
}

// IsDraw is true when nobody won the game and no sub-board is left open.
func (that *Game) IsDraw() bool {
	if that.Winner() != PlayerNone {
		return false
	}

	for sb := range BoardSize {
		if !that.IsSubBoardDecided(sb) {
			return false
		}
	}

	return true
}

// Winner checks the virtual board of sub-board winners.
func (that *Game) Winner() Player {
	return LineWinner(that.winners)
}

func (that *Game) Cell(subBoard, row, col int) Player {
	return that.cells[cellIndex(subBoard, row, col)]
}

// SubBoard returns the nine cells of a sub-board in row-major order.
func (that *Game) SubBoard(subBoard int) [BoardSize]Player {
	var board [BoardSize]Player
	copy(board[:], that.cells[subBoard*BoardSize:(subBoard+1)*BoardSize])

	return board
}

func (that *Game) SubBoardWinner(subBoard int) Player {
	return that.winners[subBoard]
}

func (that *Game) IsSubBoardFull(subBoard int) bool {
	for _, owner := range that.SubBoard(subBoard) {
		if owner == PlayerNone {
			return false
		}
	}

	return true
}

// IsSubBoardDecided - the sub-board is won or has no empty cell left.
func (that *Game) IsSubBoardDecided(subBoard int) bool {
	return that.winners[subBoard] != PlayerNone || that.IsSubBoardFull(subBoard)
}

func (that *Game) CurrentPlayer() Player {
	return that.turn
}

func (that *Game) Target() Target {
	return that.target
}

// Moves returns a copy of the display log.
func (that *Game) Moves() []string {
	return slices.Clone(that.moves)
}

// LineWinner returns the owner of the first complete row, column or diagonal of a 3x3 board.
func LineWinner(board [BoardSize]Player) Player {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != PlayerNone && a == b && b == c {
			return a
		}
	}

	return PlayerNone
}

func formatMove(player Player, subBoard, cell int) string {
	return fmt.Sprintf("%s → board %d, box %d", player, subBoard, cell)
}

func cellIndex(subBoard, row, col int) int {
	return subBoard*BoardSize + row*lineSize + col
}

func validIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

func validLine(index int) bool {
	return index >= 0 && index < lineSize
}
