package entity

type ActionType string

const (
	ActionPutPiece  ActionType = "PUT_PIECE"
	ActionMovePiece ActionType = "MOVE_PIECE"
)

// Action is a tagged union of the two possible moves. The Type field decides
// which positional fields are meaningful; it is never inferred from which
// fields happen to be present in a request.
type Action struct {
	Type     ActionType `json:"type" validate:"required,oneof=PUT_PIECE MOVE_PIECE"`
	Position *Point     `json:"position,omitempty"`
	From     *Point     `json:"from,omitempty"`
	To       *Point     `json:"to,omitempty"`
}

func PutPiece(position Point) Action {
	return Action{Type: ActionPutPiece, Position: &position}
}

func MovePiece(from, to Point) Action {
	return Action{Type: ActionMovePiece, From: &from, To: &to}
}

func (that Action) IsPut() bool {
	return that.Type == ActionPutPiece
}

func (that Action) IsMove() bool {
	return that.Type == ActionMovePiece
}
