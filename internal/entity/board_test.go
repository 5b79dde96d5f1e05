package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurn_Next(t *testing.T) {
	assert.Equal(t, TurnTwo, TurnOne.Next())
	assert.Equal(t, TurnOne, TurnTwo.Next())
}

func TestPhaseFor(t *testing.T) {
	for turnNumber := 1; turnNumber <= PutPhaseTurns; turnNumber++ {
		assert.Equal(t, PhasePut, PhaseFor(turnNumber), "turn %d", turnNumber)
	}

	assert.Equal(t, PhaseMove, PhaseFor(PutPhaseTurns+1))
	assert.Equal(t, PhaseMove, PhaseFor(42))
}

func TestPoint_InBounds(t *testing.T) {
	assert.True(t, Point{X: 0, Y: 0}.InBounds())
	assert.True(t, Point{X: 2, Y: 2}.InBounds())

	assert.False(t, Point{X: -1, Y: 0}.InBounds())
	assert.False(t, Point{X: 0, Y: 3}.InBounds())
	assert.False(t, Point{X: 3, Y: 3}.InBounds())
}

func TestBoard_Positions(t *testing.T) {
	var board Board
	board.Set(Point{X: 2, Y: 0}, TurnOne)
	board.Set(Point{X: 0, Y: 1}, TurnOne)
	board.Set(Point{X: 1, Y: 2}, TurnTwo)

	// Positions come back row by row.
	assert.Equal(t, []Point{{X: 2, Y: 0}, {X: 0, Y: 1}}, board.Positions(TurnOne))
	assert.Equal(t, []Point{{X: 1, Y: 2}}, board.Positions(TurnTwo))
	assert.Len(t, board.Positions(TurnNone), 6)
}

func TestBoardState_HasWinner(t *testing.T) {
	state := &BoardState{CurrentTurn: TurnOne, TurnNumber: 1, Phase: PhasePut}
	assert.False(t, state.HasWinner())

	state.Winner = TurnTwo
	assert.True(t, state.HasWinner())
}
