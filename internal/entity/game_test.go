package entity

import (
	"testing"

	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playingGame() *Game {
	return &Game{
		ID:      "game-1",
		Type:    VsFriend,
		Stage:   StagePlaying,
		Player1: &Player{ID: "player-1", Name: "alice", Type: PlayerTypeHuman},
		Player2: &Player{ID: "player-2", Name: "bob", Type: PlayerTypeHuman},
		Board:   &BoardState{CurrentTurn: TurnOne, TurnNumber: 1, Phase: PhasePut},
	}
}

func TestGame_HasPlayer(t *testing.T) {
	game := playingGame()

	assert.True(t, game.HasPlayer("player-1"))
	assert.True(t, game.HasPlayer("player-2"))
	assert.False(t, game.HasPlayer("stranger"))

	// A waiting game has only player1 seated.
	game.Player2 = nil
	assert.False(t, game.HasPlayer("player-2"))
}

func TestGame_CurrentPlayer(t *testing.T) {
	game := playingGame()

	// Player1 always plays ONE.
	assert.Equal(t, "player-1", game.CurrentPlayer().ID)

	game.Board.CurrentTurn = TurnTwo
	assert.Equal(t, "player-2", game.CurrentPlayer().ID)

	// No board means nobody is to move yet.
	game.Board = nil
	assert.Nil(t, game.CurrentPlayer())
}

func TestGame_PlayerTurn(t *testing.T) {
	game := playingGame()

	assert.Equal(t, TurnOne, game.PlayerTurn("player-1"))
	assert.Equal(t, TurnTwo, game.PlayerTurn("player-2"))
	assert.Equal(t, TurnNone, game.PlayerTurn("stranger"))
}

func TestGame_Opponent(t *testing.T) {
	game := playingGame()

	assert.Equal(t, "player-2", game.Opponent("player-1").ID)
	assert.Equal(t, "player-1", game.Opponent("player-2").ID)
	assert.Nil(t, game.Opponent("stranger"))

	game.Player2 = nil
	assert.Nil(t, game.Opponent("player-1"))
}

func TestGame_ConfirmPlayingState(t *testing.T) {
	game := playingGame()

	assert.NoError(t, game.ConfirmPlayingState())

	game.Stage = StageWaitingForOpponent
	assert.ErrorIs(t, game.ConfirmPlayingState(), apperror.ErrGameIsNotStarted)

	game.Stage = StageGameOver
	assert.ErrorIs(t, game.ConfirmPlayingState(), apperror.ErrGameFinished)

	game.Stage = GameStage("LIMBO")
	assert.ErrorIs(t, game.ConfirmPlayingState(), ErrUnknownGameStage)
}

func TestGame_CanBeReset(t *testing.T) {
	// A running friend game cannot be reset.
	game := playingGame()
	assert.False(t, game.CanBeReset())

	// A finished game of any type can.
	game.Stage = StageGameOver
	assert.True(t, game.CanBeReset())

	// A game vs the computer can be reset at any point.
	game = playingGame()
	game.Type = VsComputer
	assert.True(t, game.CanBeReset())
}

func TestGame_Clone(t *testing.T) {
	// Given: a playing game
	game := playingGame()

	// When: the clone is mutated
	clone := game.Clone()
	require.Equal(t, game, clone)

	clone.Stage = StageGameOver
	clone.Player1.Name = "mallory"
	clone.Player2.Name = "mallory"
	clone.Board.TurnNumber = 42
	clone.Board.Board.Set(Point{X: 1, Y: 1}, TurnTwo)

	// Then: the original is untouched
	assert.Equal(t, StagePlaying, game.Stage)
	assert.Equal(t, "alice", game.Player1.Name)
	assert.Equal(t, "bob", game.Player2.Name)
	assert.Equal(t, 1, game.Board.TurnNumber)
	assert.Equal(t, TurnNone, game.Board.Board.At(Point{X: 1, Y: 1}))
}

func TestComputerPlayer(t *testing.T) {
	computer := ComputerPlayer()

	assert.True(t, computer.IsComputer())
	assert.NotEmpty(t, computer.ID)

	human := &Player{ID: "player-1", Type: PlayerTypeHuman}
	assert.False(t, human.IsComputer())
}
