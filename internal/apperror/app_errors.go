package apperror

import "errors"

// Sentinel errors for the whole application. Handlers map these to
// user-facing responses; anything else is treated as an internal failure.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")

	ErrGameAlreadyExists = errors.New("game already exists")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameFull          = errors.New("game already has two players")
	ErrPlayerNotInGame   = errors.New("player is not part of this game")
	ErrGameCannotBeReset = errors.New("only games vs computer and finished games can be reset")

	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrWrongPhase       = errors.New("action is not allowed in the current phase")
	ErrInvalidPosition  = errors.New("position is outside the board")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrNotYourPiece     = errors.New("no piece of yours on the source cell")
	ErrCellsNotAdjacent = errors.New("source and target cells are not adjacent")
	ErrNoAvailableMoves = errors.New("no available moves")
)
