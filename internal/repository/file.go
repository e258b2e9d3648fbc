package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/persistence"
)

const saveExt = ".txt"

type fileGame struct {
	dir    string
	decode DecodeFunc
}

// NewFileGameRepository stores each slot as <dir>/<slot>.txt.
func NewFileGameRepository(dir string, decode DecodeFunc) GameRepository {
	return &fileGame{
		dir:    dir,
		decode: decode,
	}
}

func (that *fileGame) Save(_ context.Context, slot string, game *entity.Game) error {
	path, err := that.path(slot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(that.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("can't create save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = persistence.Write(tmp, game); err != nil {
		tmp.Close()
		return fmt.Errorf("can't write save file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("can't close save file: %w", err)
	}

	// rename keeps the previous save intact until the new one is complete
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("can't replace save file: %w", err)
	}

	return nil
}

func (that *fileGame) Load(_ context.Context, slot string) (*entity.Game, error) {
	path, err := that.path(slot)
	if err != nil {
		return nil, err
	}

	text, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't read save file: %w", err)
	}

	game, err := that.decode(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to decode game %q: %w", slot, err)
	}

	return game, nil
}

func (that *fileGame) Delete(_ context.Context, slot string) error {
	path, err := that.path(slot)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrSaveNotFound
	}
	if err != nil {
		return fmt.Errorf("can't delete save file: %w", err)
	}

	return nil
}

func (that *fileGame) path(slot string) (string, error) {
	if slot == "" || slot == "." || slot == ".." || strings.ContainsAny(slot, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}

	return filepath.Join(that.dir, slot+saveExt), nil
}
