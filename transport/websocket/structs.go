package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

// Inbound actions.
const (
	actionInitGame  = "game:init"
	actionJoinGame  = "game:join"
	actionGameTurn  = "game:turn"
	actionResetGame = "game:reset"
	actionQuitGame  = "game:quit"
)

// Server-to-client actions.
const (
	actionConnect      = "connect"
	actionGameUpdate   = "game:update"
	actionOpponentQuit = "game:opponent_quit"
)

// Join result statuses. A missing game on the invite path is an expected
// outcome, not an error.
const (
	statusSuccess      = "SUCCESS"
	statusGameNotFound = "GAME_NOT_FOUND"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type InitGamePayload struct {
	UserName   string            `json:"user_name" validate:"required,max=64"`
	UserTurn   entity.Turn       `json:"user_turn" validate:"omitempty,oneof=ONE TWO"`
	GameType   entity.GameType   `json:"game_type" validate:"required,oneof=VS_COMPUTER VS_RANDOM_PLAYER VS_FRIEND"`
	Difficulty entity.Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type JoinGamePayload struct {
	GameID   string `json:"game_id" validate:"required"`
	UserName string `json:"user_name" validate:"required,max=64"`
}

type TurnPayload struct {
	GameID string        `json:"game_id" validate:"required"`
	Action entity.Action `json:"action" validate:"required"`
}

type ResetGamePayload struct {
	GameID   string      `json:"game_id" validate:"required"`
	UserTurn entity.Turn `json:"user_turn" validate:"omitempty,oneof=ONE TWO"`
}

type QuitGamePayload struct {
	GameID string `json:"game_id" validate:"required"`
}

// ResponsePayload is the payload of responses and pushes. LastAction carries
// the move that produced the pushed state so the peer can animate it.
type ResponsePayload struct {
	Status     string             `json:"status,omitempty"`
	Player     *entity.Player     `json:"player,omitempty"`
	Game       *entity.Game       `json:"game,omitempty"`
	Board      *entity.BoardState `json:"board,omitempty"`
	LastAction *entity.Action     `json:"last_action,omitempty"`
	Error      string             `json:"error,omitempty"`
}
