package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/persistence"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/repository"
)

type gameUseCase interface {
	State() entity.Snapshot
	Export() string

	Reset() entity.Snapshot
	MakeMove(position entity.Position) (entity.Snapshot, error)
	QuickMove(cell int) (entity.Snapshot, error)

	Save(ctx context.Context) error
	Load(ctx context.Context) (entity.Snapshot, error)
}

type quickMoveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string           `json:"error"`
	Game  *entity.Snapshot `json:"game,omitempty"`
}

type gameHandlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func (that *gameHandlers) state(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.State())
}

func (that *gameHandlers) export(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(that.game.Export())); err != nil {
		that.logger.Error("failed to write export", "error", err)
	}
}

func (that *gameHandlers) reset(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.game.Reset())
}

func (that *gameHandlers) move(w http.ResponseWriter, r *http.Request) {
	var position entity.Position
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid move payload"})
		return
	}

	snapshot, err := that.game.MakeMove(position)
	if err != nil {
		that.writeGameError(w, err, snapshot)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *gameHandlers) quickMove(w http.ResponseWriter, r *http.Request) {
	var req quickMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	snapshot, err := that.game.QuickMove(*req.Cell)
	if err != nil {
		that.writeGameError(w, err, snapshot)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *gameHandlers) save(w http.ResponseWriter, r *http.Request) {
	if err := that.game.Save(r.Context()); err != nil {
		that.logger.Error("failed to save game", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save game"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) load(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.game.Load(r.Context())

	switch {
	case err == nil:
		that.writeJSON(w, http.StatusOK, snapshot)
	case errors.Is(err, repository.ErrSaveNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no saved game", Game: &snapshot})
	case errors.Is(err, persistence.ErrMissingLine),
		errors.Is(err, persistence.ErrBadToken),
		errors.Is(err, persistence.ErrBadInteger),
		errors.Is(err, persistence.ErrInconsistent):
		that.logger.Warn("saved game rejected", "error", err)
		that.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Game: &snapshot})
	default:
		that.logger.Error("failed to load game", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load game", Game: &snapshot})
	}
}

func (that *gameHandlers) writeGameError(w http.ResponseWriter, err error, snapshot entity.Snapshot) {
	switch {
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrNoQuickMove),
		errors.Is(err, apperror.ErrGameFinished):
		that.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Game: &snapshot})
	default:
		that.logger.Error("failed to make move", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
