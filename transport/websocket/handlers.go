package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

func (that *Server) handleInitGame(ctx context.Context, playerID string, payload json.RawMessage) (*ResponsePayload, error) {
	var req InitGamePayload
	if err := that.decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.gameUseCase.InitGame(ctx, playerID, req.UserName, req.UserTurn, req.GameType, req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to init game: %w", err)
	}

	// Matchmaking may have seated the caller into someone else's waiting
	// game; that someone has been waiting for this push.
	if game.IsPlaying() && game.Player2 != nil && game.Player2.ID == playerID {
		that.pushToPlayer(ctx, game.Player1.ID, actionGameUpdate, &ResponsePayload{Game: game})
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleJoinGame(ctx context.Context, playerID string, payload json.RawMessage) (*ResponsePayload, error) {
	var req JoinGamePayload
	if err := that.decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.gameUseCase.JoinGame(ctx, req.GameID, playerID, req.UserName)

	if errors.Is(err, apperror.ErrGameNotFound) {
		// Stale invite links are expected; report them as a typed status.
		return &ResponsePayload{Status: statusGameNotFound}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if game.Player2 != nil && game.Player2.ID == playerID {
		that.pushToPlayer(ctx, game.Player1.ID, actionGameUpdate, &ResponsePayload{Game: game})
	}

	return &ResponsePayload{Status: statusSuccess, Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, playerID string, payload json.RawMessage) (*ResponsePayload, error) {
	var req TurnPayload
	if err := that.decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.gameUseCase.SendAction(ctx, req.GameID, playerID, req.Action)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	that.notifyOpponent(ctx, game, playerID, &req.Action)

	return &ResponsePayload{Game: game, LastAction: &req.Action}, nil
}

func (that *Server) handleResetGame(ctx context.Context, playerID string, payload json.RawMessage) (*ResponsePayload, error) {
	var req ResetGamePayload
	if err := that.decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.gameUseCase.ResetGame(ctx, req.GameID, playerID, req.UserTurn)
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	that.notifyOpponent(ctx, game, playerID, nil)

	return &ResponsePayload{Board: game.Board}, nil
}

func (that *Server) handleQuitGame(ctx context.Context, playerID string, payload json.RawMessage) (*ResponsePayload, error) {
	var req QuitGamePayload
	if err := that.decodePayload(payload, &req); err != nil {
		return nil, err
	}

	opponent, err := that.gameUseCase.QuitGame(ctx, req.GameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to quit game: %w", err)
	}

	that.notifyOpponentQuit(ctx, opponent)

	return &ResponsePayload{Status: statusSuccess}, nil
}

// notifyOpponent pushes the new game state to the caller's human opponent.
// Games vs the computer have nobody to notify: the caller's own response
// already carries the computer's reply.
func (that *Server) notifyOpponent(ctx context.Context, game *entity.Game, playerID string, lastAction *entity.Action) {
	opponent := game.Opponent(playerID)
	if opponent == nil || opponent.IsComputer() {
		return
	}

	that.pushToPlayer(ctx, opponent.ID, actionGameUpdate, &ResponsePayload{Game: game, LastAction: lastAction})
}

func (that *Server) decodePayload(payload json.RawMessage, req any) error {
	if err := json.Unmarshal(payload, req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	return nil
}
