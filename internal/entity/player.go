package entity

type PlayerType string

const (
	PlayerTypeHuman    PlayerType = "HUMAN"
	PlayerTypeComputer PlayerType = "COMPUTER"
)

// Player holds information about one participant. The ID is the opaque id the
// transport assigned to the player's connection.
type Player struct {
	ID   string     `json:"id"`
	Name string     `json:"name,omitempty"`
	Type PlayerType `json:"type"`
}

func (that *Player) IsComputer() bool {
	return that.Type == PlayerTypeComputer
}

// computerPlayer is the process-wide singleton seated as player2 in every
// game vs the computer. The id is fixed so it can never collide with a
// connection-derived id.
var computerPlayer = &Player{
	ID:   "5c28d7b43e6140c894d26d5ec409ed8e",
	Name: "BOT",
	Type: PlayerTypeComputer,
}

func ComputerPlayer() *Player {
	return computerPlayer
}
