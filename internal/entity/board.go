package entity

// BoardSize - the board is always 3x3, other sizes are not supported.
const BoardSize = 3

// PutPhaseTurns - number of half-moves during which pieces are still being
// placed; from turn 7 on, pieces are moved instead.
const PutPhaseTurns = 6

type Turn string

const (
	TurnNone Turn = ""
	TurnOne  Turn = "ONE"
	TurnTwo  Turn = "TWO"
)

// Next returns the other player's turn.
func (that Turn) Next() Turn {
	if that == TurnOne {
		return TurnTwo
	}
	return TurnOne
}

type Phase string

const (
	PhasePut  Phase = "PUT"
	PhaseMove Phase = "MOVE"
)

// PhaseFor - the phase is a pure function of the turn number.
func PhaseFor(turnNumber int) Phase {
	if turnNumber <= PutPhaseTurns {
		return PhasePut
	}
	return PhaseMove
}

// Point is a cell coordinate, x and y in [0,3).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether the point lies on the board.
func (that Point) InBounds() bool {
	return that.X >= 0 && that.X < BoardSize && that.Y >= 0 && that.Y < BoardSize
}

// Board is the 3x3 grid, indexed [y][x]. An empty cell holds TurnNone.
type Board [BoardSize][BoardSize]Turn

func (that Board) At(p Point) Turn {
	return that[p.Y][p.X]
}

func (that *Board) Set(p Point, turn Turn) {
	that[p.Y][p.X] = turn
}

// Positions returns all cells holding the given mark, row by row.
// Positions(TurnNone) returns all empty cells.
func (that Board) Positions(turn Turn) []Point {
	positions := make([]Point, 0, BoardSize*BoardSize)
	for y := range that {
		for x := range that[y] {
			if that[y][x] == turn {
				positions = append(positions, Point{X: x, Y: y})
			}
		}
	}
	return positions
}

// BoardState is the authoritative state of one game's board. It is a value
// type: the rules engine produces new states instead of mutating old ones.
type BoardState struct {
	Board       Board `json:"board"`
	CurrentTurn Turn  `json:"current_turn"`
	TurnNumber  int   `json:"turn_number"`
	Winner      Turn  `json:"winner,omitempty"`
	Phase       Phase `json:"phase"`
}

func (that *BoardState) HasWinner() bool {
	return that.Winner != TurnNone
}
