package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/persistence"
)

type GameUseCase interface {
	State() entity.Snapshot
	Export() string

	Reset() entity.Snapshot
	MakeMove(position entity.Position) (entity.Snapshot, error)
	QuickMove(cell int) (entity.Snapshot, error)

	Save(ctx context.Context) error
	Load(ctx context.Context) (entity.Snapshot, error)
}

type gameRepo interface {
	Save(ctx context.Context, slot string, game *entity.Game) error
	Load(ctx context.Context, slot string) (*entity.Game, error)
}

// gameUseCase owns the single game of a session. The mutex serializes moves and the load-replace.
type gameUseCase struct {
	logger *slog.Logger

	gameRepo gameRepo
	slot     string

	mu   sync.RWMutex
	game *entity.Game
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo, slot string) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "game"),
		gameRepo: gameRepo,
		slot:     slot,
		game:     entity.NewGame(),
	}
}

func (that *gameUseCase) State() entity.Snapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.game.Snapshot()
}

func (that *gameUseCase) Export() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return persistence.Encode(that.game)
}

func (that *gameUseCase) Reset() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Reset()
	that.logger.Info("game reset")

	return that.game.Snapshot()
}

func (that *gameUseCase) MakeMove(position entity.Position) (entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeMove", "player", that.game.CurrentPlayer().String())

	if that.game.IsGameOver() {
		return that.game.Snapshot(), apperror.ErrGameFinished
	}

	if !that.game.MakeMove(position.SubBoard, position.Row, position.Col) {
		log.Debug("move rejected", "position", position, "target", that.game.Target().String())
		return that.game.Snapshot(), fmt.Errorf("%w: board %d, row %d, col %d",
			apperror.ErrIllegalMove, position.SubBoard, position.Row, position.Col)
	}

	that.logResult(log)

	return that.game.Snapshot(), nil
}

func (that *gameUseCase) QuickMove(cell int) (entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "QuickMove", "player", that.game.CurrentPlayer().String())

	if that.game.IsGameOver() {
		return that.game.Snapshot(), apperror.ErrGameFinished
	}

	if !that.game.QuickMove(cell) {
		log.Debug("quick move rejected", "cell", cell, "target", that.game.Target().String())
		return that.game.Snapshot(), fmt.Errorf("%w: cell %d", apperror.ErrNoQuickMove, cell)
	}

	that.logResult(log)

	return that.game.Snapshot(), nil
}

func (that *gameUseCase) logResult(log *slog.Logger) {
	switch {
	case that.game.IsGameOver():
		log.Info("game won", "winner", that.game.Winner().String())
	case that.game.IsDraw():
		log.Info("game drawn")
	default:
		log.Debug("move accepted", "target", that.game.Target().String())
	}
}

func (that *gameUseCase) Save(ctx context.Context) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if err := that.gameRepo.Save(ctx, that.slot, that.game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game saved", "slot", that.slot, "moves", len(that.game.Moves()))

	return nil
}

// Load replaces the session game with the saved one. On any error the current game stays.
func (that *gameUseCase) Load(ctx context.Context) (entity.Snapshot, error) {
	loaded, err := that.gameRepo.Load(ctx, that.slot)
	if err != nil {
		return that.State(), fmt.Errorf("failed to load game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.game = loaded
	that.logger.Info("game loaded", "slot", that.slot, "moves", len(loaded.Moves()))

	return that.game.Snapshot(), nil
}
