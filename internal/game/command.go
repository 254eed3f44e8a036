package game

import "github.com/pixil98/go-battleship/internal/board"

// Command is the closed set of requests an area routes into a game.
// Dispatch happens by type switch; anything outside the set fails with
// ErrInvalidCommand.
type Command interface {
	isCommand()
}

// JoinGame asks the area to join the actor to its live game, creating a
// new game first when there is none (or the live one is over).
type JoinGame struct{}

// StartGame marks the actor ready to begin.
type StartGame struct {
	GameID string
}

// Setup describes one placement-phase action against a board.
type Setup struct {
	Board    Color      `json:"board"`
	Kind     board.Kind `json:"kind"`
	Row      int        `json:"row"`
	Col      int        `json:"col"`
	Vertical bool       `json:"vertical"`
}

// SetUpGameMove places or removes a boat during the placement phase.
// Remove clears by position; the declared kind is ignored on removal.
type SetUpGameMove struct {
	GameID string
	Setup  Setup
	Remove bool
}

// Guess targets one cell on the opponent's board.
type Guess struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameMove applies a guess for the acting player.
type GameMove struct {
	GameID string
	Move   Guess
}

// LeaveGame removes the actor from the live game, forfeiting if it is
// underway.
type LeaveGame struct {
	GameID string
}

func (JoinGame) isCommand()      {}
func (StartGame) isCommand()     {}
func (SetUpGameMove) isCommand() {}
func (GameMove) isCommand()      {}
func (LeaveGame) isCommand()     {}
