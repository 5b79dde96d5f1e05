package repository

import (
	"testing"

	"github.com/rocketscienceinc/alinem-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPlayerRepository_MapToGame(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewRedisPlayerRepository(st.Storage)

	// When: a player is mapped to a game
	err := playerRepo.MapToGame(ctx, "player-1", "game-1")

	// Then: the mapping is readable back
	require.NoError(t, err)

	gameID, err := playerRepo.GameIDOf(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, "game-1", gameID)

	// And: remapping overwrites, a player is in at most one game
	require.NoError(t, playerRepo.MapToGame(ctx, "player-1", "game-2"))
	gameID, err = playerRepo.GameIDOf(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, "game-2", gameID)
}

func TestRedisPlayerRepository_GameIDOf(t *testing.T) {
	t.Run("GameIDOf_Unknown", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewRedisPlayerRepository(st.Storage)

		// When: asking for a player that was never mapped
		gameID, err := playerRepo.GameIDOf(ctx, "nobody")

		// Then: an empty id is returned, not an error
		require.NoError(t, err)
		assert.Empty(t, gameID)
	})
}

func TestRedisPlayerRepository_Unmap(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewRedisPlayerRepository(st.Storage)

	require.NoError(t, playerRepo.MapToGame(ctx, "player-1", "game-1"))

	// When: the player is unmapped twice
	require.NoError(t, playerRepo.Unmap(ctx, "player-1"))
	require.NoError(t, playerRepo.Unmap(ctx, "player-1"))

	// Then: the mapping is gone
	gameID, err := playerRepo.GameIDOf(ctx, "player-1")
	require.NoError(t, err)
	assert.Empty(t, gameID)
}
