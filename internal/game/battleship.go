package game

import (
	"github.com/google/uuid"
	"github.com/pixil98/go-battleship/internal/board"
)

// Color identifies a player slot. Blue fills before green.
type Color string

const (
	ColorBlue  Color = "blue"
	ColorGreen Color = "green"
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == ColorBlue {
		return ColorGreen
	}
	return ColorBlue
}

// Move is one entry in a battleship game's append-only guess log.
type Move struct {
	Color Color `json:"color"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Hit   bool  `json:"hit"`
}

// Battleship is a two-player naval combat game. All methods assume the
// caller (the owning area) serializes access.
type Battleship struct {
	id     string
	status Status
	result Result

	blue  *Player
	green *Player

	blueReady  bool
	greenReady bool

	firstPlayer Color
	blueBoard   *board.Board
	greenBoard  *board.Board
	moves       []Move
	winner      *Player

	// Slot preferences carried over from the immediately preceding game.
	preferredBlue  string
	preferredGreen string
}

// NewBattleship creates a game in the waiting-for-players state. When prior
// is the game that just finished in the same area, the new game flips the
// starting color and remembers which slot each prior occupant held, so a
// returning player gets their old color back if it is still free.
func NewBattleship(prior *Battleship) *Battleship {
	g := &Battleship{
		id:          uuid.New().String(),
		status:      StatusWaitingForPlayers,
		firstPlayer: ColorBlue,
		blueBoard:   board.New(),
		greenBoard:  board.New(),
	}

	if prior != nil {
		g.firstPlayer = prior.firstPlayer.Other()
		if prior.blue != nil {
			g.preferredBlue = prior.blue.Id
		}
		if prior.green != nil {
			g.preferredGreen = prior.green.Id
		}
	}

	return g
}

// ID returns the instance's unique id.
func (g *Battleship) ID() string {
	return g.id
}

// Status returns the current lifecycle state.
func (g *Battleship) Status() Status {
	return g.status
}

// Result returns nil until the game is over.
func (g *Battleship) Result() Result {
	return g.result
}

// Players returns the joined players, blue slot first.
func (g *Battleship) Players() []*Player {
	var players []*Player
	if g.blue != nil {
		players = append(players, g.blue)
	}
	if g.green != nil {
		players = append(players, g.green)
	}
	return players
}

// Blue returns the blue slot's occupant, or nil.
func (g *Battleship) Blue() *Player {
	return g.blue
}

// Green returns the green slot's occupant, or nil.
func (g *Battleship) Green() *Player {
	return g.green
}

// Ready reports whether the given slot has readied up.
func (g *Battleship) Ready(c Color) bool {
	if c == ColorBlue {
		return g.blueReady
	}
	return g.greenReady
}

// FirstPlayer returns the color that acts on even move counts.
func (g *Battleship) FirstPlayer() Color {
	return g.firstPlayer
}

// Turn returns the color that acts next.
func (g *Battleship) Turn() Color {
	return g.turnColor()
}

// Moves returns a copy of the guess log.
func (g *Battleship) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// Winner returns the winning player, or nil.
func (g *Battleship) Winner() *Player {
	return g.winner
}

// Board returns the board owned by the given color.
func (g *Battleship) Board(c Color) *board.Board {
	if c == ColorBlue {
		return g.blueBoard
	}
	return g.greenBoard
}

// colorOf returns the slot the player holds, or false.
func (g *Battleship) colorOf(p *Player) (Color, bool) {
	switch {
	case g.blue != nil && g.blue.Id == p.Id:
		return ColorBlue, true
	case g.green != nil && g.green.Id == p.Id:
		return ColorGreen, true
	}
	return "", false
}

// Join assigns the player to an open slot. A player who held a color in the
// immediately preceding game gets it back if it is free; otherwise slots fill
// blue before green.
func (g *Battleship) Join(p *Player) error {
	if _, ok := g.colorOf(p); ok {
		return ErrPlayerAlreadyInGame
	}
	if g.blue != nil && g.green != nil {
		return ErrGameFull
	}

	switch {
	case p.Id == g.preferredBlue && g.blue == nil:
		g.blue = p
	case p.Id == g.preferredGreen && g.green == nil:
		g.green = p
	case g.blue == nil:
		g.blue = p
	default:
		g.green = p
	}

	if g.blue != nil && g.green != nil {
		g.status = StatusWaitingToStart
	}
	return nil
}

// Leave vacates the player's slot before the game starts, forfeits the game
// to the opponent once both players are committed, and is a complete no-op
// on a finished game.
func (g *Battleship) Leave(p *Player) error {
	if g.status == StatusOver {
		return nil
	}

	c, ok := g.colorOf(p)
	if !ok {
		return ErrPlayerNotInGame
	}

	switch g.status {
	case StatusWaitingForPlayers, StatusWaitingToStart:
		g.vacate(c)
		g.status = StatusWaitingForPlayers
	default:
		// PlacingBoats and InProgress: the remaining player wins by forfeit.
		g.finish(g.opponent(c))
	}
	return nil
}

func (g *Battleship) vacate(c Color) {
	if c == ColorBlue {
		g.blue = nil
		g.blueReady = false
	} else {
		g.green = nil
		g.greenReady = false
	}
}

func (g *Battleship) opponent(c Color) *Player {
	if c == ColorBlue {
		return g.green
	}
	return g.blue
}

// Start marks the actor ready. Readying up is idempotent. When both players
// are ready their boards must each carry one full, legal boat set; the game
// then clears the ready flags and moves into the placement phase (and on to
// play, see advance).
func (g *Battleship) Start(p *Player) error {
	if g.status == StatusPlacingBoats {
		// Repeated ready calls during placement are benign.
		return nil
	}
	if g.status != StatusWaitingToStart {
		return ErrGameNotStartable
	}

	c, ok := g.colorOf(p)
	if !ok {
		return ErrPlayerNotInGame
	}

	if c == ColorBlue {
		g.blueReady = true
	} else {
		g.greenReady = true
	}

	if !g.blueReady || !g.greenReady {
		return nil
	}

	// Both ready: boards must be fully populated. On failure the ready
	// flags stay as they were set.
	if !g.blueBoard.FullyPopulated() || !g.greenBoard.FullyPopulated() {
		return ErrGameNotStartable
	}

	g.blueReady = false
	g.greenReady = false
	g.status = StatusPlacingBoats
	g.advance()
	return nil
}

// advance moves the game from placement into play once both boards carry a
// full boat set. Ready-up already validated the boards, so this normally
// fires immediately on entering the placement phase; the phase persists only
// if a removal regresses a board first.
func (g *Battleship) advance() {
	if g.status != StatusPlacingBoats {
		return
	}
	if g.blueBoard.FullyPopulated() && g.greenBoard.FullyPopulated() {
		g.status = StatusInProgress
	}
}

// setupBoard validates a placement-phase action and returns the target board.
func (g *Battleship) setupBoard(p *Player, s Setup) (*board.Board, error) {
	if g.status != StatusWaitingToStart && g.status != StatusPlacingBoats {
		return nil, ErrGameNotInProgress
	}

	c, ok := g.colorOf(p)
	if !ok {
		return nil, ErrPlayerNotInGame
	}
	if c != s.Board {
		return nil, ErrNotYourBoard
	}

	return g.Board(c), nil
}

// PlaceBoat writes a full boat onto the actor's own board.
func (g *Battleship) PlaceBoat(p *Player, s Setup) error {
	b, err := g.setupBoard(p, s)
	if err != nil {
		return err
	}

	cells, err := board.ComputeCells(s.Kind, s.Row, s.Col, s.Vertical)
	if err != nil {
		return err
	}

	placement := board.Placement{Kind: s.Kind, Row: s.Row, Col: s.Col, Vertical: s.Vertical}
	if err := b.Place(placement, cells); err != nil {
		return ErrInvalidMove
	}

	g.advance()
	return nil
}

// RemoveBoat clears one cell on the actor's own board by position. Removing
// an empty cell is a no-op, never an error.
func (g *Battleship) RemoveBoat(p *Player, s Setup) error {
	b, err := g.setupBoard(p, s)
	if err != nil {
		return err
	}

	b.Remove(s.Row, s.Col)
	return nil
}

// turnColor derives the acting color from the first player and the number of
// moves made so far. The turn is never stored.
func (g *Battleship) turnColor() Color {
	if len(g.moves)%2 == 0 {
		return g.firstPlayer
	}
	return g.firstPlayer.Other()
}

// ApplyMove applies a guess to the opposing board, appends it to the move
// log, and finishes the game if the last boat cell was sunk.
func (g *Battleship) ApplyMove(p *Player, mv Guess) error {
	if g.status != StatusInProgress {
		return ErrGameNotInProgress
	}

	c, ok := g.colorOf(p)
	if !ok {
		return ErrPlayerNotInGame
	}
	if c != g.turnColor() {
		return ErrMoveNotYourTurn
	}

	target := g.Board(c.Other())
	hit, err := target.ApplyGuess(mv.Row, mv.Col)
	if err != nil {
		return err
	}

	g.moves = append(g.moves, Move{Color: c, Row: mv.Row, Col: mv.Col, Hit: hit})

	if target.AllSunk() {
		g.finish(p)
	}
	return nil
}

// finish ends the game exactly once, recording the winner (nil for a tie)
// and finalizing the result keyed by display name.
func (g *Battleship) finish(winner *Player) {
	g.status = StatusOver
	g.winner = winner

	g.result = Result{}
	for _, p := range g.Players() {
		score := 0
		if winner != nil && p.Id == winner.Id {
			score = 1
		}
		g.result[p.Name] = score
	}
}
