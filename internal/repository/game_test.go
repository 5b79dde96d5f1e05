package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
	"github.com/rocketscienceinc/alinem-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisGameRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewRedisGameRepository(st.Storage)

	// Given: a playing game with both seats taken
	game := redisTestGame("123")

	// When: the game is created
	err := gameRepo.Create(ctx, game)

	// Then: it is stored and comes back intact
	require.NoError(t, err)

	got, err := gameRepo.Get(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game, got)

	// And: creating the same id again fails
	err = gameRepo.Create(ctx, game)
	assert.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
}

func TestRedisGameRepository_Get(t *testing.T) {
	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewRedisGameRepository(st.Storage)

		// When: Get is called with a non-existent id
		_, err := gameRepo.Get(ctx, "9999999")

		// Then: a typed not-found error is returned
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestRedisGameRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewRedisGameRepository(st.Storage)

		game := redisTestGame("123")
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: the game advances and is updated
		game.Stage = entity.StageGameOver
		game.Board.Winner = entity.TurnOne
		err := gameRepo.Update(ctx, game)

		// Then: the stored game reflects the change
		require.NoError(t, err)
		got, err := gameRepo.Get(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StageGameOver, got.Stage)
		assert.Equal(t, entity.TurnOne, got.Board.Winner)
	})

	t.Run("Update_NeverCreates", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewRedisGameRepository(st.Storage)

		// When: updating a game that was never stored
		err := gameRepo.Update(ctx, redisTestGame("9999999"))

		// Then: the update is refused and nothing was written
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		_, err = gameRepo.Get(ctx, "9999999")
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestRedisGameRepository_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewRedisGameRepository(st.Storage)

	// Given: a stored game that is queued for a random opponent
	game := redisTestGame("123")
	require.NoError(t, gameRepo.Create(ctx, game))
	require.NoError(t, gameRepo.EnqueueOpen(ctx, game.ID))

	// When: the game is deleted
	err := gameRepo.Delete(ctx, game.ID)

	// Then: both the game and its queue entry are gone
	require.NoError(t, err)

	_, err = gameRepo.Get(ctx, game.ID)
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)

	id, err := gameRepo.DequeueOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	// And: deleting again is a no-op
	require.NoError(t, gameRepo.Delete(ctx, game.ID))
}

func TestRedisGameRepository_OpenQueue(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewRedisGameRepository(st.Storage)

	// Given: two games queued in order
	require.NoError(t, gameRepo.EnqueueOpen(ctx, "first"))
	require.NoError(t, gameRepo.EnqueueOpen(ctx, "second"))

	// When/Then: they dequeue FIFO and the empty queue yields ""
	id, err := gameRepo.DequeueOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", id)

	id, err = gameRepo.DequeueOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", id)

	id, err = gameRepo.DequeueOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func redisTestGame(id string) *entity.Game {
	board := entity.BoardState{CurrentTurn: entity.TurnOne, TurnNumber: 1, Phase: entity.PhasePut}
	return &entity.Game{
		ID:        id,
		Type:      entity.VsFriend,
		Stage:     entity.StagePlaying,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Player1:   &entity.Player{ID: "player-1", Name: "alice", Type: entity.PlayerTypeHuman},
		Player2:   &entity.Player{ID: "player-2", Name: "bob", Type: entity.PlayerTypeHuman},
		Board:     &board,
	}
}
