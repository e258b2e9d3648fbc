package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const (
	movesPrefix   = "MOVES="
	cellSeparator = ","
	rowsPerBoard  = 3

	// a full game has at most 81 moves, the count itself comes from an untrusted file
	maxPreallocatedMoves = entity.BoardSize * entity.BoardSize
)

// Encode - renders the game in the line-oriented save format.
func Encode(game *entity.Game) string {
	var builder strings.Builder

	// strings.Builder never fails
	_ = Write(&builder, game)

	return builder.String()
}

// Write streams the save format into w:
// current player, target code, nine blocks of winner plus three rows of cells, MOVES=<n> and the n log lines.
func Write(w io.Writer, game *entity.Game) error {
	buf := bufio.NewWriter(w)

	writeLine(buf, game.CurrentPlayer().String())
	writeLine(buf, strconv.Itoa(game.Target().Code()))

	for sb := range entity.BoardSize {
		writeLine(buf, game.SubBoardWinner(sb).String())

		for row := range rowsPerBoard {
			tokens := make([]string, 0, rowsPerBoard)
			for col := range rowsPerBoard {
				tokens = append(tokens, game.Cell(sb, row, col).String())
			}
			writeLine(buf, strings.Join(tokens, cellSeparator))
		}
	}

	moves := game.Moves()
	writeLine(buf, movesPrefix+strconv.Itoa(len(moves)))
	for _, move := range moves {
		writeLine(buf, move)
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}

	return nil
}

func writeLine(buf *bufio.Writer, line string) {
	buf.WriteString(line)
	buf.WriteByte('\n')
}

// Decode rebuilds a game from its save text. Stored winners, turn and target are trusted as written.
func Decode(text string) (*entity.Game, error) {
	return Read(strings.NewReader(text))
}

// DecodeStrict decodes like Decode and then rejects a game whose stored fields disagree with its cells.
func DecodeStrict(text string) (*entity.Game, error) {
	game, err := Decode(text)
	if err != nil {
		return nil, err
	}

	if err = Validate(game); err != nil {
		return nil, err
	}

	return game, nil
}

func Read(r io.Reader) (*entity.Game, error) {
	dec := &decoder{reader: bufio.NewReader(r)}
	loader := entity.NewLoader()

	player, err := dec.player()
	if err != nil {
		return nil, err
	}
	loader.SetCurrentPlayer(player)

	target, err := dec.target()
	if err != nil {
		return nil, err
	}
	loader.SetTarget(target)

	for sb := range entity.BoardSize {
		winner, err := dec.player()
		if err != nil {
			return nil, err
		}
		loader.SetSubBoardWinner(sb, winner)

		for row := range rowsPerBoard {
			cells, err := dec.row()
			if err != nil {
				return nil, err
			}

			for col, owner := range cells {
				loader.SetCell(sb, row, col, owner)
			}
		}
	}

	moves, err := dec.moves()
	if err != nil {
		return nil, err
	}
	for _, move := range moves {
		loader.AppendMove(move)
	}

	return loader.Game(), nil
}

type decoder struct {
	reader *bufio.Reader
	line   int
}

func (that *decoder) next() (string, error) {
	that.line++

	line, err := that.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", that.fail(ErrMissingLine)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read save line %d: %w", that.line, err)
	}

	line = strings.TrimSuffix(line, "\n")

	return strings.TrimSuffix(line, "\r"), nil
}

func (that *decoder) fail(err error) error {
	return &FormatError{Line: that.line, Err: err}
}

func (that *decoder) player() (entity.Player, error) {
	line, err := that.next()
	if err != nil {
		return entity.PlayerNone, err
	}

	player, err := entity.ParsePlayer(line)
	if err != nil {
		return entity.PlayerNone, that.fail(fmt.Errorf("%w: %w", ErrBadToken, err))
	}

	return player, nil
}

func (that *decoder) target() (entity.Target, error) {
	line, err := that.next()
	if err != nil {
		return entity.Target{}, err
	}

	code, err := strconv.Atoi(line)
	if err != nil {
		return entity.Target{}, that.fail(fmt.Errorf("%w: %q", ErrBadInteger, line))
	}

	target, err := entity.TargetFromCode(code)
	if err != nil {
		return entity.Target{}, that.fail(fmt.Errorf("%w: %w", ErrBadInteger, err))
	}

	return target, nil
}

func (that *decoder) row() ([rowsPerBoard]entity.Player, error) {
	var cells [rowsPerBoard]entity.Player

	line, err := that.next()
	if err != nil {
		return cells, err
	}

	tokens := strings.Split(line, cellSeparator)
	if len(tokens) != rowsPerBoard {
		return cells, that.fail(fmt.Errorf("%w: want %d cells, got %q", ErrBadToken, rowsPerBoard, line))
	}

	for i, token := range tokens {
		cells[i], err = entity.ParsePlayer(token)
		if err != nil {
			return cells, that.fail(fmt.Errorf("%w: %w", ErrBadToken, err))
		}
	}

	return cells, nil
}

// moves reads the log trailer. A file that ends right after the boards carries an empty log.
func (that *decoder) moves() ([]string, error) {
	header, err := that.next()
	if errors.Is(err, ErrMissingLine) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	countText, ok := strings.CutPrefix(header, movesPrefix)
	if !ok {
		return nil, that.fail(fmt.Errorf("%w: want %s<n>, got %q", ErrBadToken, movesPrefix, header))
	}

	count, err := strconv.Atoi(countText)
	if err != nil || count < 0 {
		return nil, that.fail(fmt.Errorf("%w: move count %q", ErrBadInteger, countText))
	}

	moves := make([]string, 0, min(count, maxPreallocatedMoves))
	for range count {
		move, err := that.next()
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}
