package alinem

import (
	"fmt"

	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

// maxPiecesPerPlayer - each side places exactly three pieces during the PUT
// phase and then only moves them. More pieces means corrupted state.
const maxPiecesPerPlayer = 3

// NewBoardState returns the board of a freshly started game, with the given
// player opening on turn 1.
func NewBoardState(firstTurn entity.Turn) *entity.BoardState {
	return &entity.BoardState{
		CurrentTurn: firstTurn,
		TurnNumber:  1,
		Phase:       entity.PhasePut,
	}
}

// ValidateAction checks the full legality of an action against the current
// board, independent of any client-side checks.
func ValidateAction(state *entity.BoardState, action entity.Action) error {
	switch action.Type {
	case entity.ActionPutPiece:
		return validatePut(state, action)
	case entity.ActionMovePiece:
		return validateMove(state, action)
	default:
		return fmt.Errorf("unsupported action type: %q", action.Type)
	}
}

func validatePut(state *entity.BoardState, action entity.Action) error {
	if state.Phase != entity.PhasePut {
		return apperror.ErrWrongPhase
	}

	if action.Position == nil || !action.Position.InBounds() {
		return apperror.ErrInvalidPosition
	}

	if state.Board.At(*action.Position) != entity.TurnNone {
		return apperror.ErrCellOccupied
	}

	return nil
}

func validateMove(state *entity.BoardState, action entity.Action) error {
	if state.Phase != entity.PhaseMove {
		return apperror.ErrWrongPhase
	}

	if action.From == nil || !action.From.InBounds() || action.To == nil || !action.To.InBounds() {
		return apperror.ErrInvalidPosition
	}

	if state.Board.At(*action.From) != state.CurrentTurn {
		return apperror.ErrNotYourPiece
	}

	if state.Board.At(*action.To) != entity.TurnNone {
		return apperror.ErrCellOccupied
	}

	if !AreAdjacent(*action.From, *action.To) {
		return apperror.ErrCellsNotAdjacent
	}

	return nil
}

// ApplyAction applies one already-validated action and returns the resulting
// board state. The input state is never mutated. When the mover completes
// three in a row the winner is set and the turn stays with the mover.
func ApplyAction(state entity.BoardState, action entity.Action) entity.BoardState {
	board := state.Board

	switch action.Type {
	case entity.ActionPutPiece:
		board.Set(*action.Position, state.CurrentTurn)
	case entity.ActionMovePiece:
		board.Set(*action.To, state.CurrentTurn)
		board.Set(*action.From, entity.TurnNone)
	}

	next := entity.BoardState{
		Board:       board,
		TurnNumber:  state.TurnNumber + 1,
		Phase:       entity.PhaseFor(state.TurnNumber + 1),
		CurrentTurn: state.CurrentTurn.Next(),
	}

	// A move can only ever complete the mover's own row, so checking the
	// side that just played is sufficient.
	if IsWinner(board, state.CurrentTurn) {
		next.Winner = state.CurrentTurn
		next.CurrentTurn = state.CurrentTurn
	}

	return next
}

// AreAdjacent reports whether two cells touch in the 8-neighborhood sense
// (Chebyshev distance 1).
func AreAdjacent(first, second entity.Point) bool {
	distX := abs(first.X - second.X)
	distY := abs(first.Y - second.Y)
	return distX <= 1 && distY <= 1 && distX+distY > 0
}

// AreCollinear reports whether three points lie on one straight line.
func AreCollinear(p1, p2, p3 entity.Point) bool {
	return (p2.Y-p1.Y)*(p3.X-p2.X) == (p3.Y-p2.Y)*(p2.X-p1.X)
}

// IsWinner reports whether the given player's three pieces are aligned. On a
// 3x3 board any three distinct collinear cells form a full row, column or
// diagonal, so a collinearity check is enough.
func IsWinner(board entity.Board, turn entity.Turn) bool {
	positions := board.Positions(turn)
	if len(positions) < maxPiecesPerPlayer {
		return false
	}

	if len(positions) > maxPiecesPerPlayer {
		panic(fmt.Sprintf("corrupted board: player %s has %d pieces", turn, len(positions)))
	}

	return AreCollinear(positions[0], positions[1], positions[2])
}

// AvailableActions enumerates every legal action for the player to move, in
// deterministic board order.
func AvailableActions(state *entity.BoardState) []entity.Action {
	emptyCells := state.Board.Positions(entity.TurnNone)

	if state.Phase == entity.PhasePut {
		actions := make([]entity.Action, 0, len(emptyCells))
		for _, position := range emptyCells {
			actions = append(actions, entity.PutPiece(position))
		}
		return actions
	}

	pieces := state.Board.Positions(state.CurrentTurn)
	actions := make([]entity.Action, 0, len(pieces)*len(emptyCells))
	for _, piece := range pieces {
		for _, target := range emptyCells {
			if AreAdjacent(piece, target) {
				actions = append(actions, entity.MovePiece(piece, target))
			}
		}
	}
	return actions
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
