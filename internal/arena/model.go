package arena

import (
	"github.com/pixil98/go-battleship/internal/board"
	"github.com/pixil98/go-battleship/internal/game"
)

// Model is the serialization of an area's externally visible state: enough
// for a remote renderer to reconstruct boards, turn, status, and history
// without further queries.
type Model struct {
	Id        string        `json:"id"`
	Name      string        `json:"name"`
	Bounds    Bounds        `json:"bounds"`
	Occupants []game.Player `json:"occupants"`
	Game      *GameModel    `json:"game,omitempty"`
	History   []game.Result `json:"history"`
}

// GameModel is the snapshot of one live game instance. Boards are exposed in
// full; withholding an opponent's unsunk boats from a particular viewer is
// the renderer's job, supported by board.Redacted.
type GameModel struct {
	Id          string       `json:"id"`
	Status      game.Status  `json:"status"`
	Blue        *game.Player `json:"blue,omitempty"`
	Green       *game.Player `json:"green,omitempty"`
	BlueReady   bool         `json:"blue_ready"`
	GreenReady  bool         `json:"green_ready"`
	FirstPlayer game.Color   `json:"first_player"`
	Turn        game.Color   `json:"turn,omitempty"`
	Moves       []game.Move  `json:"moves"`
	Winner      *game.Player `json:"winner,omitempty"`

	BlueBoard  [board.Size][board.Size]board.Cell `json:"blue_board"`
	GreenBoard [board.Size][board.Size]board.Cell `json:"green_board"`
}

// model builds the snapshot. Callers must hold the area lock.
func (a *Area) model() *Model {
	m := &Model{
		Id:      a.id,
		Name:    a.spec.Name,
		Bounds:  a.spec.Bounds,
		History: append([]game.Result{}, a.history...),
	}

	for _, o := range a.occupants {
		m.Occupants = append(m.Occupants, *o)
	}

	if b, ok := a.game.(*game.Battleship); ok {
		gm := &GameModel{
			Id:          b.ID(),
			Status:      b.Status(),
			Blue:        b.Blue(),
			Green:       b.Green(),
			BlueReady:   b.Ready(game.ColorBlue),
			GreenReady:  b.Ready(game.ColorGreen),
			FirstPlayer: b.FirstPlayer(),
			Moves:       b.Moves(),
			Winner:      b.Winner(),
			BlueBoard:   b.Board(game.ColorBlue).Cells(),
			GreenBoard:  b.Board(game.ColorGreen).Cells(),
		}
		if b.Status() == game.StatusInProgress {
			gm.Turn = b.Turn()
		}
		m.Game = gm
	}

	return m
}
