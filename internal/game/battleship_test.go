package game

import (
	"reflect"
	"testing"

	"github.com/pixil98/go-battleship/internal/board"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

func testPlayer(id, name string) *Player {
	return &Player{Id: id, Name: name}
}

// populate places one full legal boat set on the player's board.
func populate(t *testing.T, g *Battleship, p *Player, c Color) {
	t.Helper()
	for i, kind := range board.Kinds() {
		err := g.PlaceBoat(p, Setup{Board: c, Kind: kind, Row: i * 2, Col: 0})
		if err != nil {
			t.Fatalf("placing %s for %s: %v", kind, c, err)
		}
	}
}

// newRunningGame returns a game in progress with blue to act first.
func newRunningGame(t *testing.T) (*Battleship, *Player, *Player) {
	t.Helper()
	g := NewBattleship(nil)
	blue := testPlayer("p1", "Alice")
	green := testPlayer("p2", "Bob")
	if err := g.Join(blue); err != nil {
		t.Fatalf("blue join: %v", err)
	}
	if err := g.Join(green); err != nil {
		t.Fatalf("green join: %v", err)
	}
	populate(t, g, blue, ColorBlue)
	populate(t, g, green, ColorGreen)
	if err := g.Start(blue); err != nil {
		t.Fatalf("blue start: %v", err)
	}
	if err := g.Start(green); err != nil {
		t.Fatalf("green start: %v", err)
	}
	testutil.AssertEqual(t, "status", g.Status(), StatusInProgress)
	return g, blue, green
}

func TestJoinBoundaries(t *testing.T) {
	g := NewBattleship(nil)
	p1 := testPlayer("p1", "Alice")
	p2 := testPlayer("p2", "Bob")
	p3 := testPlayer("p3", "Carol")

	testutil.AssertEqual(t, "initial status", g.Status(), StatusWaitingForPlayers)

	if err := g.Join(p1); err != nil {
		t.Fatalf("first join: %v", err)
	}
	testutil.AssertEqual(t, "blue slot", g.Blue(), p1)
	testutil.AssertEqual(t, "status after one", g.Status(), StatusWaitingForPlayers)

	testutil.AssertEqual(t, "rejoin", g.Join(p1), ErrPlayerAlreadyInGame, cmpopts.EquateErrors())

	if err := g.Join(p2); err != nil {
		t.Fatalf("second join: %v", err)
	}
	testutil.AssertEqual(t, "green slot", g.Green(), p2)
	testutil.AssertEqual(t, "status after two", g.Status(), StatusWaitingToStart)

	testutil.AssertEqual(t, "third join", g.Join(p3), ErrGameFull, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "rejoin when full", g.Join(p1), ErrPlayerAlreadyInGame, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "roster size", len(g.Players()), 2)
}

func TestPreferredColors(t *testing.T) {
	prior := NewBattleship(nil)
	alice := testPlayer("p1", "Alice")
	bob := testPlayer("p2", "Bob")
	if err := prior.Join(alice); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := prior.Join(bob); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "prior first player", prior.FirstPlayer(), ColorBlue)

	g := NewBattleship(prior)
	testutil.AssertEqual(t, "flipped first player", g.FirstPlayer(), ColorGreen)

	// Bob joins first this time but still gets his old green slot.
	if err := g.Join(bob); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "bob keeps green", g.Green(), bob)
	testutil.AssertEqual(t, "blue open", g.Blue() == nil, true)

	if err := g.Join(alice); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "alice keeps blue", g.Blue(), alice)
}

func TestPreferredColorTaken(t *testing.T) {
	prior := NewBattleship(nil)
	alice := testPlayer("p1", "Alice")
	bob := testPlayer("p2", "Bob")
	if err := prior.Join(alice); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := prior.Join(bob); err != nil {
		t.Fatalf("join: %v", err)
	}

	// A newcomer takes blue first; Alice falls back to the open slot.
	g := NewBattleship(prior)
	carol := testPlayer("p3", "Carol")
	if err := g.Join(carol); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "carol gets blue", g.Blue(), carol)

	if err := g.Join(alice); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "alice falls back to green", g.Green(), alice)
}

func TestReadyUpIdempotent(t *testing.T) {
	g := NewBattleship(nil)
	blue := testPlayer("p1", "Alice")
	green := testPlayer("p2", "Bob")
	if err := g.Join(blue); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Join(green); err != nil {
		t.Fatalf("join: %v", err)
	}
	populate(t, g, blue, ColorBlue)
	populate(t, g, green, ColorGreen)

	if err := g.Start(blue); err != nil {
		t.Fatalf("first ready: %v", err)
	}
	testutil.AssertEqual(t, "blue ready", g.Ready(ColorBlue), true)
	testutil.AssertEqual(t, "still waiting", g.Status(), StatusWaitingToStart)

	// Repeating is a no-op, not an error, and changes nothing.
	if err := g.Start(blue); err != nil {
		t.Fatalf("repeated ready: %v", err)
	}
	testutil.AssertEqual(t, "status unchanged", g.Status(), StatusWaitingToStart)

	if err := g.Start(green); err != nil {
		t.Fatalf("second ready: %v", err)
	}
	testutil.AssertEqual(t, "in progress", g.Status(), StatusInProgress)
	testutil.AssertEqual(t, "blue flag cleared", g.Ready(ColorBlue), false)
	testutil.AssertEqual(t, "green flag cleared", g.Ready(ColorGreen), false)
}

func TestStartValidatesBoards(t *testing.T) {
	g := NewBattleship(nil)
	blue := testPlayer("p1", "Alice")
	green := testPlayer("p2", "Bob")
	if err := g.Join(blue); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Join(green); err != nil {
		t.Fatalf("join: %v", err)
	}
	populate(t, g, blue, ColorBlue)
	// Green never places a boat.

	if err := g.Start(blue); err != nil {
		t.Fatalf("blue ready: %v", err)
	}
	testutil.AssertEqual(t, "not startable", g.Start(green), ErrGameNotStartable, cmpopts.EquateErrors())

	// Ready flags are left as they were set.
	testutil.AssertEqual(t, "blue ready kept", g.Ready(ColorBlue), true)
	testutil.AssertEqual(t, "green ready kept", g.Ready(ColorGreen), true)
	testutil.AssertEqual(t, "status kept", g.Status(), StatusWaitingToStart)

	// Finishing the board lets the next ready call through.
	populate(t, g, green, ColorGreen)
	if err := g.Start(green); err != nil {
		t.Fatalf("ready after populating: %v", err)
	}
	testutil.AssertEqual(t, "in progress", g.Status(), StatusInProgress)
}

func TestStartBeforeFull(t *testing.T) {
	g := NewBattleship(nil)
	p := testPlayer("p1", "Alice")
	if err := g.Join(p); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "too early", g.Start(p), ErrGameNotStartable, cmpopts.EquateErrors())
}

func TestPlacementErrors(t *testing.T) {
	g := NewBattleship(nil)
	blue := testPlayer("p1", "Alice")
	green := testPlayer("p2", "Bob")
	outsider := testPlayer("p3", "Carol")
	if err := g.Join(blue); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Join(green); err != nil {
		t.Fatalf("join: %v", err)
	}

	tests := map[string]struct {
		actor  *Player
		setup  Setup
		expErr error
	}{
		"outsider": {
			actor:  outsider,
			setup:  Setup{Board: ColorBlue, Kind: board.KindCruiser},
			expErr: ErrPlayerNotInGame,
		},
		"wrong board": {
			actor:  blue,
			setup:  Setup{Board: ColorGreen, Kind: board.KindCruiser},
			expErr: ErrNotYourBoard,
		},
		"off the grid": {
			actor:  blue,
			setup:  Setup{Board: ColorBlue, Kind: board.KindBattleship, Row: 0, Col: 8},
			expErr: board.ErrOutOfBounds,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "error", g.PlaceBoat(tt.actor, tt.setup), tt.expErr)
		})
	}

	// Same anchor/orientation twice and kind quota both surface as InvalidMove.
	if err := g.PlaceBoat(blue, Setup{Board: ColorBlue, Kind: board.KindCruiser, Row: 0, Col: 0}); err != nil {
		t.Fatalf("placing: %v", err)
	}
	err := g.PlaceBoat(blue, Setup{Board: ColorBlue, Kind: board.KindSubmarine, Row: 0, Col: 0})
	testutil.AssertEqual(t, "same anchor", err, ErrInvalidMove, cmpopts.EquateErrors())
	err = g.PlaceBoat(blue, Setup{Board: ColorBlue, Kind: board.KindCruiser, Row: 5, Col: 5})
	testutil.AssertEqual(t, "quota", err, ErrInvalidMove, cmpopts.EquateErrors())
}

func TestRemoveBoat(t *testing.T) {
	g := NewBattleship(nil)
	blue := testPlayer("p1", "Alice")
	green := testPlayer("p2", "Bob")
	if err := g.Join(blue); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Join(green); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := g.PlaceBoat(blue, Setup{Board: ColorBlue, Kind: board.KindCruiser, Row: 0, Col: 0}); err != nil {
		t.Fatalf("placing: %v", err)
	}

	// Removing an empty cell must not error and must not change the board.
	before := g.Board(ColorBlue).BoatCells()
	if err := g.RemoveBoat(blue, Setup{Board: ColorBlue, Row: 9, Col: 9}); err != nil {
		t.Fatalf("removing ocean cell: %v", err)
	}
	testutil.AssertEqual(t, "boat cells unchanged", g.Board(ColorBlue).BoatCells(), before)

	if err := g.RemoveBoat(blue, Setup{Board: ColorBlue, Row: 0, Col: 0}); err != nil {
		t.Fatalf("removing anchor: %v", err)
	}
	testutil.AssertEqual(t, "boat cells", g.Board(ColorBlue).BoatCells(), before-1)

	testutil.AssertEqual(t, "wrong board",
		g.RemoveBoat(green, Setup{Board: ColorBlue, Row: 0, Col: 1}), ErrNotYourBoard)
}

func TestTurnParity(t *testing.T) {
	g, blue, green := newRunningGame(t)

	// Blue is first: green acting on an even move count always fails and
	// never mutates state.
	before := g.Moves()
	err := g.ApplyMove(green, Guess{Row: 9, Col: 9})
	testutil.AssertEqual(t, "green too early", err, ErrMoveNotYourTurn, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "move count unchanged", len(g.Moves()), len(before))

	if err := g.ApplyMove(blue, Guess{Row: 9, Col: 9}); err != nil {
		t.Fatalf("blue move: %v", err)
	}
	testutil.AssertEqual(t, "blue twice", g.ApplyMove(blue, Guess{Row: 9, Col: 8}), ErrMoveNotYourTurn, cmpopts.EquateErrors())

	if err := g.ApplyMove(green, Guess{Row: 9, Col: 9}); err != nil {
		t.Fatalf("green move: %v", err)
	}
	testutil.AssertEqual(t, "moves logged", len(g.Moves()), 2)

	outsider := testPlayer("p9", "Mallory")
	testutil.AssertEqual(t, "outsider", g.ApplyMove(outsider, Guess{}), ErrPlayerNotInGame, cmpopts.EquateErrors())
}

func TestMoveBeforeStart(t *testing.T) {
	g := NewBattleship(nil)
	p := testPlayer("p1", "Alice")
	if err := g.Join(p); err != nil {
		t.Fatalf("join: %v", err)
	}
	testutil.AssertEqual(t, "not in progress", g.ApplyMove(p, Guess{}), ErrGameNotInProgress, cmpopts.EquateErrors())
}

func TestWinDetection(t *testing.T) {
	g, blue, green := newRunningGame(t)

	// Blue sinks every green boat cell; green wastes shots on open ocean.
	targets := []Guess{}
	for _, p := range g.Board(ColorGreen).Placements() {
		cells, err := board.ComputeCells(p.Kind, p.Row, p.Col, p.Vertical)
		if err != nil {
			t.Fatalf("computing cells: %v", err)
		}
		for _, pc := range cells {
			targets = append(targets, Guess{Row: pc.Row, Col: pc.Col})
		}
	}

	for i, tgt := range targets {
		if err := g.ApplyMove(blue, tgt); err != nil {
			t.Fatalf("blue guess %d: %v", i, err)
		}
		if i < len(targets)-1 {
			testutil.AssertEqual(t, "still in progress", g.Status(), StatusInProgress)
			if err := g.ApplyMove(green, Guess{Row: 9, Col: 9}); err != nil {
				t.Fatalf("green guess %d: %v", i, err)
			}
		}
	}

	testutil.AssertEqual(t, "status", g.Status(), StatusOver)
	testutil.AssertEqual(t, "winner", g.Winner(), blue)
	testutil.AssertEqual(t, "result", reflect.DeepEqual(g.Result(), Result{"Alice": 1, "Bob": 0}), true)

	// No further moves are accepted on a finished game.
	testutil.AssertEqual(t, "move after over", g.ApplyMove(green, Guess{}), ErrGameNotInProgress, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "place after over",
		g.PlaceBoat(blue, Setup{Board: ColorBlue, Kind: board.KindCruiser}), ErrGameNotInProgress)
}

func TestForfeit(t *testing.T) {
	g, blue, green := newRunningGame(t)

	if err := g.Leave(blue); err != nil {
		t.Fatalf("leave: %v", err)
	}
	testutil.AssertEqual(t, "status", g.Status(), StatusOver)
	testutil.AssertEqual(t, "winner", g.Winner(), green)
	testutil.AssertEqual(t, "result", reflect.DeepEqual(g.Result(), Result{"Alice": 0, "Bob": 1}), true)

	// A subsequent leave by the other player is a complete no-op.
	snapshot := *g
	if err := g.Leave(green); err != nil {
		t.Fatalf("leave after over: %v", err)
	}
	testutil.AssertEqual(t, "state preserved", reflect.DeepEqual(*g, snapshot), true)
}

func TestLeaveBeforeStart(t *testing.T) {
	g := NewBattleship(nil)
	blue := testPlayer("p1", "Alice")
	green := testPlayer("p2", "Bob")
	outsider := testPlayer("p3", "Carol")

	testutil.AssertEqual(t, "not joined", g.Leave(blue), ErrPlayerNotInGame, cmpopts.EquateErrors())

	if err := g.Join(blue); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Join(green); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Start(green); err != nil {
		t.Fatalf("ready: %v", err)
	}

	testutil.AssertEqual(t, "outsider", g.Leave(outsider), ErrPlayerNotInGame, cmpopts.EquateErrors())

	// Leaving while waiting to start vacates the slot, clears the ready
	// flag, and reverts to waiting for players.
	if err := g.Leave(green); err != nil {
		t.Fatalf("leave: %v", err)
	}
	testutil.AssertEqual(t, "status", g.Status(), StatusWaitingForPlayers)
	testutil.AssertEqual(t, "green vacated", g.Green() == nil, true)
	testutil.AssertEqual(t, "ready reset", g.Ready(ColorGreen), false)
	testutil.AssertEqual(t, "no result", g.Result() == nil, true)
}

func TestUniqueIds(t *testing.T) {
	a := NewBattleship(nil)
	b := NewBattleship(a)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
}
