package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPlayerRepository keeps the player→game mapping in Redis under
// "player:<id>". It is the Redis-backed counterpart of the same operations
// on MemoryRegistry.
type RedisPlayerRepository struct {
	client *redis.Client
}

func NewRedisPlayerRepository(client *redis.Client) *RedisPlayerRepository {
	return &RedisPlayerRepository{
		client: client,
	}
}

func (that *RedisPlayerRepository) MapToGame(ctx context.Context, playerID, gameID string) error {
	if err := that.client.Set(ctx, playerKey(playerID), gameID, 0).Err(); err != nil {
		return fmt.Errorf("failed to map player to game: %w", err)
	}

	return nil
}

func (that *RedisPlayerRepository) GameIDOf(ctx context.Context, playerID string) (string, error) {
	gameID, err := that.client.Get(ctx, playerKey(playerID)).Result()

	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get player's game: %w", err)
	}

	return gameID, nil
}

func (that *RedisPlayerRepository) Unmap(ctx context.Context, playerID string) error {
	if err := that.client.Del(ctx, playerKey(playerID)).Err(); err != nil {
		return fmt.Errorf("failed to unmap player: %w", err)
	}

	return nil
}

func playerKey(id string) string {
	return "player:" + id
}
