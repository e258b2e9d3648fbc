package persistence

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

const emptyBlock = "NONE\nNONE,NONE,NONE\nNONE,NONE,NONE\nNONE,NONE,NONE\n"

func freshSave() string {
	return "X\n-1\n" + strings.Repeat(emptyBlock, entity.BoardSize) + "MOVES=0\n"
}

func lines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// replaceLine swaps the 1-based line n of a save.
func replaceLine(text string, n int, replacement string) string {
	all := lines(text)
	all[n-1] = replacement

	return strings.Join(all, "\n") + "\n"
}

func TestEncode(t *testing.T) {
	t.Run("New game", func(t *testing.T) {
		// When: a new game is encoded
		text := Encode(entity.NewGame())

		// Then: it matches the fixed layout with an empty log
		require.Equal(t, freshSave(), text)
		assert.Len(t, lines(text), 39)
	})

	t.Run("After the first move", func(t *testing.T) {
		// Given: X played the center of the center
		game := entity.NewGame()
		require.True(t, game.MakeMove(4, 1, 1))

		// When: the game is encoded
		all := lines(Encode(game))

		// Then: turn, target, the sub-board 4 block and the log reflect the move
		require.Len(t, all, 40)
		assert.Equal(t, "O", all[0])
		assert.Equal(t, "4", all[1])
		assert.Equal(t, "NONE", all[18])
		assert.Equal(t, "NONE,NONE,NONE", all[19])
		assert.Equal(t, "NONE,X,NONE", all[20])
		assert.Equal(t, "MOVES=1", all[38])
		assert.Equal(t, "X → board 4, box 4", all[39])
	})

	t.Run("Game over is written as -2", func(t *testing.T) {
		loader := entity.NewLoader()
		loader.SetTarget(entity.Finished())

		assert.Equal(t, "-2", lines(Encode(loader.Game()))[1])
	})

	t.Run("Write matches Encode", func(t *testing.T) {
		game := entity.NewGame()
		require.True(t, game.MakeMove(0, 2, 1))

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, game))

		assert.Equal(t, Encode(game), buf.String())
	})
}

func TestDecode(t *testing.T) {
	t.Run("New game", func(t *testing.T) {
		// When: the save of a new game is decoded
		game, err := Decode(freshSave())

		// Then: it equals a new game
		require.NoError(t, err)
		require.Equal(t, entity.NewGame(), game)
	})

	t.Run("Round trip of random playouts", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			rnd := rand.New(rand.NewSource(seed)) //nolint: gosec // deterministic playouts
			game := entity.NewGame()

			for {
				// When: every intermediate state is encoded and decoded
				decoded, err := Decode(Encode(game))
				require.NoError(t, err)

				// Then: the state comes back unchanged and passes validation
				require.Equal(t, game, decoded, "seed %d", seed)
				require.NoError(t, Validate(decoded), "seed %d", seed)

				legal := game.LegalMoves()
				if len(legal) == 0 {
					break
				}
				move := legal[rnd.Intn(len(legal))]
				require.True(t, game.MakeMove(move.SubBoard, move.Row, move.Col))
			}
		}
	})

	t.Run("Log lines are copied verbatim", func(t *testing.T) {
		// Given: a save with arbitrary log text
		text := strings.Replace(freshSave(), "MOVES=0\n", "MOVES=2\nhello, world\n  spaced  \n", 1)

		// When: it is decoded
		game, err := Decode(text)

		// Then: the lines are kept as written
		require.NoError(t, err)
		assert.Equal(t, []string{"hello, world", "  spaced  "}, game.Moves())
	})

	t.Run("Stored winners are trusted", func(t *testing.T) {
		// Given: a save claiming X won an empty sub-board 3
		text := replaceLine(freshSave(), 3+4*3, "X")

		// When: it is decoded
		game, err := Decode(text)

		// Then: the claim is kept as is
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.SubBoardWinner(3))
		assert.Equal(t, [entity.BoardSize]entity.Player{}, game.SubBoard(3))
	})

	t.Run("Missing log trailer means an empty log", func(t *testing.T) {
		text := strings.TrimSuffix(freshSave(), "MOVES=0\n")

		game, err := Decode(text)

		require.NoError(t, err)
		assert.Empty(t, game.Moves())
	})

	t.Run("Windows line endings", func(t *testing.T) {
		text := strings.ReplaceAll(freshSave(), "\n", "\r\n")

		game, err := Decode(text)

		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(), game)
	})

	t.Run("Last line without newline", func(t *testing.T) {
		text := strings.TrimSuffix(freshSave(), "\n")

		_, err := Decode(text)

		require.NoError(t, err)
	})
}

func TestDecode_FormatErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		kind error
		line int
	}{
		{
			name: "Unknown cell token on line 5",
			text: replaceLine(freshSave(), 5, "NONE,Q,NONE"),
			kind: ErrBadToken,
			line: 5,
		},
		{
			name: "Unknown current player",
			text: replaceLine(freshSave(), 1, "Z"),
			kind: ErrBadToken,
			line: 1,
		},
		{
			name: "Unknown sub-board winner",
			text: replaceLine(freshSave(), 7, "x"),
			kind: ErrBadToken,
			line: 7,
		},
		{
			name: "Row with two cells",
			text: replaceLine(freshSave(), 4, "NONE,NONE"),
			kind: ErrBadToken,
			line: 4,
		},
		{
			name: "Non-numeric target",
			text: replaceLine(freshSave(), 2, "free"),
			kind: ErrBadInteger,
			line: 2,
		},
		{
			name: "Target out of range",
			text: replaceLine(freshSave(), 2, "9"),
			kind: ErrBadInteger,
			line: 2,
		},
		{
			name: "Truncated boards",
			text: strings.Join(lines(freshSave())[:10], "\n") + "\n",
			kind: ErrMissingLine,
			line: 11,
		},
		{
			name: "Empty input",
			text: "",
			kind: ErrMissingLine,
			line: 1,
		},
		{
			name: "Fewer log lines than announced",
			text: strings.Replace(freshSave(), "MOVES=0\n", "MOVES=3\nX → board 4, box 4\n", 1),
			kind: ErrMissingLine,
			line: 41,
		},
		{
			name: "Non-numeric move count",
			text: strings.Replace(freshSave(), "MOVES=0", "MOVES=two", 1),
			kind: ErrBadInteger,
			line: 39,
		},
		{
			name: "Negative move count",
			text: strings.Replace(freshSave(), "MOVES=0", "MOVES=-1", 1),
			kind: ErrBadInteger,
			line: 39,
		},
		{
			name: "Wrong log header",
			text: strings.Replace(freshSave(), "MOVES=0", "STEPS=0", 1),
			kind: ErrBadToken,
			line: 39,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// When: the malformed save is decoded
			game, err := Decode(tc.text)

			// Then: a FormatError of the expected kind points at the line and no game is returned
			require.ErrorIs(t, err, tc.kind)
			assert.Nil(t, game)

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tc.line, formatErr.Line)
		})
	}

	t.Run("Target out of range keeps the entity cause", func(t *testing.T) {
		_, err := Decode(replaceLine(freshSave(), 2, "-3"))

		require.ErrorIs(t, err, entity.ErrInvalidTarget)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestDecodeStrict(t *testing.T) {
	played := func(t *testing.T) *entity.Game {
		t.Helper()

		game := entity.NewGame()
		require.True(t, game.MakeMove(4, 1, 1))
		require.True(t, game.MakeMove(4, 0, 0))

		return game
	}

	t.Run("Reachable state is accepted", func(t *testing.T) {
		game := played(t)

		decoded, err := DecodeStrict(Encode(game))

		require.NoError(t, err)
		assert.Equal(t, game, decoded)
	})

	t.Run("Format errors come first", func(t *testing.T) {
		_, err := DecodeStrict(replaceLine(freshSave(), 5, "NONE,Q,NONE"))

		require.ErrorIs(t, err, ErrBadToken)
	})

	cases := []struct {
		name string
		edit func(text string) string
	}{
		{
			name: "Winner without a line",
			edit: func(text string) string { return replaceLine(text, 3, "O") },
		},
		{
			name: "Line without a winner",
			edit: func(text string) string {
				return replaceLine(text, 4, "X,X,X")
			},
		},
		{
			name: "No current player",
			edit: func(text string) string { return replaceLine(text, 1, "NONE") },
		},
		{
			name: "Wrong player to move",
			edit: func(text string) string { return replaceLine(text, 1, "O") },
		},
		{
			name: "Game over without a winner",
			edit: func(text string) string { return replaceLine(text, 2, "-2") },
		},
		{
			name: "Too many X marks",
			edit: func(text string) string { return replaceLine(text, 4, "X,NONE,X") },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: the save of a new game edited by hand
			text := tc.edit(freshSave())

			// When: it is decoded strictly
			game, err := DecodeStrict(text)

			// Then: the inconsistency is reported
			require.ErrorIs(t, err, ErrInconsistent)
			assert.Nil(t, game)
		})
	}

	t.Run("Forced into a won sub-board", func(t *testing.T) {
		// Given: X won sub-board 0 in a real game, then the target is pointed at it
		loader := entity.NewLoader()
		loader.SetCell(0, 0, 0, entity.PlayerX)
		loader.SetCell(0, 0, 1, entity.PlayerX)
		loader.SetCell(0, 0, 2, entity.PlayerX)
		loader.SetCell(1, 0, 0, entity.PlayerO)
		loader.SetCell(2, 0, 0, entity.PlayerO)
		loader.SetCell(3, 0, 0, entity.PlayerO)
		loader.SetSubBoardWinner(0, entity.PlayerX)
		loader.SetTarget(entity.Forced(0))
		text := Encode(loader.Game())

		// When: it is decoded strictly
		_, err := DecodeStrict(text)

		// Then: the target is rejected
		require.ErrorIs(t, err, ErrInconsistent)
		assert.Contains(t, err.Error(), "forced sub-board 0")
	})

	t.Run("Won game with a live target", func(t *testing.T) {
		loader := entity.NewLoader()
		loader.SetSubBoardWinner(0, entity.PlayerO)
		loader.SetSubBoardWinner(1, entity.PlayerO)
		loader.SetSubBoardWinner(2, entity.PlayerO)

		err := Validate(loader.Game())

		require.ErrorIs(t, err, ErrInconsistent)
	})
}
