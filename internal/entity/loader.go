package entity

// Loader rebuilds a Game from stored fields without validating them. Only the persistence codec should use it:
// nothing here recomputes winners or checks that the target and turn agree with the cells.
type Loader struct {
	game *Game
}

func NewLoader() *Loader {
	return &Loader{game: NewGame()}
}

func (that *Loader) SetCell(subBoard, row, col int, player Player) {
	that.game.cells[cellIndex(subBoard, row, col)] = player
}

func (that *Loader) SetSubBoardWinner(subBoard int, winner Player) {
	that.game.winners[subBoard] = winner
}

func (that *Loader) SetCurrentPlayer(player Player) {
	that.game.turn = player
}

func (that *Loader) SetTarget(target Target) {
	that.game.target = target
}

func (that *Loader) AppendMove(line string) {
	that.game.moves = append(that.game.moves, line)
}

// Game hands over the rebuilt state. The loader must not be used afterwards.
func (that *Loader) Game() *Game {
	game := that.game
	that.game = nil

	return game
}
