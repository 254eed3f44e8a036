package game

// Status is the lifecycle state of a game instance.
type Status string

const (
	StatusWaitingForPlayers Status = "waiting-for-players"
	StatusWaitingToStart    Status = "waiting-to-start"
	StatusPlacingBoats      Status = "placing-boats"
	StatusInProgress        Status = "in-progress"
	StatusOver              Status = "over"
)

// Player is a reference to an identity owned by the surrounding system.
// The engine stores references and never mutates them.
type Player struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Result maps a player's display name to their score: 1 for the winner,
// 0 for the loser, 0 for both on a tie. Finalized exactly once, when the
// game reaches StatusOver, and constant thereafter.
type Result map[string]int

// Game is the contract every concrete game hosted in an area satisfies.
// Implementations validate status first, then actor identity, then domain
// legality, so error precedence is deterministic.
type Game interface {
	// ID returns the instance's globally unique id, fixed at construction.
	ID() string
	Status() Status
	// Result returns nil until the game is over.
	Result() Result
	// Players returns the joined players in slot order.
	Players() []*Player
	Join(p *Player) error
	Leave(p *Player) error
}
