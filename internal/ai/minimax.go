package ai

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/alinem-backend/internal/alinem"
	"github.com/rocketscienceinc/alinem-backend/internal/apperror"
	"github.com/rocketscienceinc/alinem-backend/internal/entity"
)

var ErrUnsupportedDifficulty = errors.New("unsupported difficulty")

// winningTriples - the 8 scoring lines of the board: 3 rows, 3 columns,
// 2 diagonals.
var winningTriples = [8][3]entity.Point{
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
	{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}},
}

// Engine picks actions for the computer player with a depth-bounded minimax
// search. It holds no state and may be used concurrently for independent
// games.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// ChooseAction returns the best action for the player to move on the given
// board. Ties keep the first action in enumeration order, which makes the
// engine deterministic.
func (that *Engine) ChooseAction(state *entity.BoardState, difficulty entity.Difficulty) (entity.Action, error) {
	maxDepth, err := searchDepth(difficulty)
	if err != nil {
		return entity.Action{}, err
	}

	actions := alinem.AvailableActions(state)
	if len(actions) == 0 {
		return entity.Action{}, apperror.ErrNoAvailableMoves
	}

	maxTurn := state.CurrentTurn

	bestAction := actions[0]
	bestEvaluation := math.MinInt
	for i, action := range actions {
		afterMove := alinem.ApplyAction(*state, action)
		evaluation := that.evaluate(&afterMove, maxTurn, 0, maxDepth)
		if i == 0 || evaluation > bestEvaluation {
			bestAction = action
			bestEvaluation = evaluation
		}
	}

	return bestAction, nil
}

// evaluate walks the game tree, alternating maximize/minimize as the turn
// alternates, and falls back to the static score at the depth limit or on a
// decided position. A position where the mover has no legal action evaluates
// to the worst (or best) possible score for them.
func (that *Engine) evaluate(state *entity.BoardState, maxTurn entity.Turn, depth, maxDepth int) int {
	if depth == maxDepth || state.HasWinner() {
		return that.heuristic(state, maxTurn)
	}

	maximizing := state.CurrentTurn == maxTurn
	actions := alinem.AvailableActions(state)

	if maximizing {
		maxEvaluation := math.MinInt
		for _, action := range actions {
			afterMove := alinem.ApplyAction(*state, action)
			if evaluation := that.evaluate(&afterMove, maxTurn, depth+1, maxDepth); evaluation > maxEvaluation {
				maxEvaluation = evaluation
			}
		}
		return maxEvaluation
	}

	minEvaluation := math.MaxInt
	for _, action := range actions {
		afterMove := alinem.ApplyAction(*state, action)
		if evaluation := that.evaluate(&afterMove, maxTurn, depth+1, maxDepth); evaluation < minEvaluation {
			minEvaluation = evaluation
		}
	}
	return minEvaluation
}

// heuristic scores a position for maxTurn: won positions are terminal, other
// positions count occupied cells over the 8 winning triples.
func (that *Engine) heuristic(state *entity.BoardState, maxTurn entity.Turn) int {
	if state.HasWinner() {
		if state.Winner == maxTurn {
			return math.MaxInt
		}
		return math.MinInt
	}

	score := 0
	for _, triple := range winningTriples {
		for _, position := range triple {
			switch state.Board.At(position) {
			case maxTurn:
				score++
			case maxTurn.Next():
				score--
			}
		}
	}
	return score
}

func searchDepth(difficulty entity.Difficulty) (int, error) {
	switch difficulty {
	case entity.DifficultyEasy:
		return 1, nil
	case entity.DifficultyMedium:
		return 2, nil
	case entity.DifficultyHard:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDifficulty, difficulty)
	}
}
