package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/persistence"
)

var (
	ErrSaveNotFound = errors.New("save not found")
	ErrInvalidSlot  = errors.New("invalid save slot")
)

// GameRepository keeps saved games under named slots, always in the text save format.
type GameRepository interface {
	Save(ctx context.Context, slot string, game *entity.Game) error
	Load(ctx context.Context, slot string) (*entity.Game, error)
	Delete(ctx context.Context, slot string) error
}

// DecodeFunc turns save text into a game, persistence.Decode or persistence.DecodeStrict.
type DecodeFunc func(text string) (*entity.Game, error)

// Decoder picks the load path: strict re-checks stored winners and turn against the cells.
func Decoder(strict bool) DecodeFunc {
	if strict {
		return persistence.DecodeStrict
	}

	return persistence.Decode
}

type redisGame struct {
	client *redis.Client
	decode DecodeFunc
}

func NewRedisGameRepository(client *redis.Client, decode DecodeFunc) GameRepository {
	return &redisGame{
		client: client,
		decode: decode,
	}
}

func (that *redisGame) Save(ctx context.Context, slot string, game *entity.Game) error {
	if slot == "" {
		return ErrInvalidSlot
	}

	err := that.client.Set(ctx, gameKey(slot), persistence.Encode(game), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *redisGame) Load(ctx context.Context, slot string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(slot)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSaveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by slot: %w", err)
	}

	game, err := that.decode(response)
	if err != nil {
		return nil, fmt.Errorf("failed to decode game %q: %w", slot, err)
	}

	return game, nil
}

func (that *redisGame) Delete(ctx context.Context, slot string) error {
	deleted, err := that.client.Del(ctx, gameKey(slot)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by slot: %w", err)
	}

	if deleted == 0 {
		return ErrSaveNotFound
	}

	return nil
}

func gameKey(slot string) string {
	return "game:" + slot
}
