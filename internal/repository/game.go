package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

// openGamesKey holds the FIFO queue of game ids awaiting a random opponent.
const openGamesKey = "games:open"

// RedisGameRepository is the Redis-backed alternative to MemoryRegistry for
// game state and the matchmaking queue. Games are stored as JSON under
// "game:<id>"; the queue relies on LPUSH/LPOP being atomic for the
// exactly-once dequeue guarantee.
type RedisGameRepository struct {
	client *redis.Client
}

func NewRedisGameRepository(client *redis.Client) *RedisGameRepository {
	return &RedisGameRepository{
		client: client,
	}
}

func (that *RedisGameRepository) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, gameKey(game.ID), gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	return nil
}

func (that *RedisGameRepository) Get(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *RedisGameRepository) Update(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	// XX: update only replaces, it never creates a removed game.
	updated, err := that.client.SetXX(ctx, gameKey(game.ID), gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if !updated {
		return fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, game.ID)
	}

	return nil
}

func (that *RedisGameRepository) Delete(ctx context.Context, id string) error {
	if err := that.client.Del(ctx, gameKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if err := that.client.LRem(ctx, openGamesKey, 0, id).Err(); err != nil {
		return fmt.Errorf("failed to evict game from open queue: %w", err)
	}

	return nil
}

func (that *RedisGameRepository) EnqueueOpen(ctx context.Context, id string) error {
	if err := that.client.RPush(ctx, openGamesKey, id).Err(); err != nil {
		return fmt.Errorf("failed to enqueue open game: %w", err)
	}

	return nil
}

func (that *RedisGameRepository) DequeueOpen(ctx context.Context) (string, error) {
	id, err := that.client.LPop(ctx, openGamesKey).Result()

	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to dequeue open game: %w", err)
	}

	return id, nil
}

func gameKey(id string) string {
	return "game:" + id
}
