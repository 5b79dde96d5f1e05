package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
)

type GameType string

const (
	VsComputer     GameType = "VS_COMPUTER"
	VsRandomPlayer GameType = "VS_RANDOM_PLAYER"
	VsFriend       GameType = "VS_FRIEND"
)

type GameStage string

const (
	StageWaitingForOpponent GameStage = "WAITING_FOR_OPPONENT"
	StagePlaying            GameStage = "PLAYING"
	StageGameOver           GameStage = "GAME_OVER"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var (
	ErrUnknownGameStage = errors.New("unknown game stage")
	ErrUnknownGameType  = errors.New("unknown game type")
)

// Game is one session's full server-side state, from matchmaking through
// completion. Player2 and Board are nil only while the game is waiting for
// an opponent; the Stage field is authoritative, never the nil-ness of Board.
type Game struct {
	ID         string      `json:"id"`
	Type       GameType    `json:"type"`
	Stage      GameStage   `json:"stage"`
	CreatedAt  time.Time   `json:"created_at"`
	Player1    *Player     `json:"player1"`
	Player2    *Player     `json:"player2,omitempty"`
	Board      *BoardState `json:"board,omitempty"`
	Difficulty Difficulty  `json:"difficulty,omitempty"`
}

func (that *Game) IsWaiting() bool {
	return that.Stage == StageWaitingForOpponent
}

func (that *Game) IsPlaying() bool {
	return that.Stage == StagePlaying
}

func (that *Game) IsOver() bool {
	return that.Stage == StageGameOver
}

func (that *Game) IsVsComputer() bool {
	return that.Type == VsComputer
}

func (that *Game) IsVsRandomPlayer() bool {
	return that.Type == VsRandomPlayer
}

// HasPlayer reports whether the player with the given id is seated in this game.
func (that *Game) HasPlayer(id string) bool {
	if that.Player1 != nil && that.Player1.ID == id {
		return true
	}
	return that.Player2 != nil && that.Player2.ID == id
}

// CurrentPlayer returns the player whose turn it is, or nil while the game
// has no board yet.
func (that *Game) CurrentPlayer() *Player {
	if that.Board == nil {
		return nil
	}
	if that.Board.CurrentTurn == TurnOne {
		return that.Player1
	}
	return that.Player2
}

// PlayerTurn returns which side the given player plays. Player1 is always ONE.
func (that *Game) PlayerTurn(id string) Turn {
	if that.Player1 != nil && that.Player1.ID == id {
		return TurnOne
	}
	if that.Player2 != nil && that.Player2.ID == id {
		return TurnTwo
	}
	return TurnNone
}

// Opponent returns the other seated player, or nil if there is none.
func (that *Game) Opponent(id string) *Player {
	if that.Player1 != nil && that.Player1.ID == id {
		return that.Player2
	}
	if that.Player2 != nil && that.Player2.ID == id {
		return that.Player1
	}
	return nil
}

// Clone returns a deep copy of the game. The registry hands out and stores
// copies so that a caller mutating a borrowed game cannot corrupt the
// persisted state.
func (that *Game) Clone() *Game {
	clone := *that
	if that.Player1 != nil {
		player := *that.Player1
		clone.Player1 = &player
	}
	if that.Player2 != nil {
		player := *that.Player2
		clone.Player2 = &player
	}
	if that.Board != nil {
		board := *that.Board
		clone.Board = &board
	}
	return &clone
}

// ConfirmPlayingState returns nil only when actions may be applied to the game.
func (that *Game) ConfirmPlayingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsOver():
		return apperror.ErrGameFinished
	case that.IsPlaying():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStage, that.Stage)
	}
}

// CanBeReset - only games vs the computer and finished games can be reset.
func (that *Game) CanBeReset() bool {
	return that.IsVsComputer() || that.IsOver()
}
