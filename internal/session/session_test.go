package session

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-battleship/internal/arena"
	"github.com/pixil98/go-battleship/internal/board"
	"github.com/pixil98/go-battleship/internal/game"
	"github.com/pixil98/go-testutil"
)

func newTestArea() *arena.Area {
	return arena.NewArea("pier", &arena.AreaSpec{
		Name:   "The Pier",
		Bounds: arena.Bounds{Width: 5, Height: 5},
	}, nil)
}

func newTestSession(a *arena.Area, id, name string) (*Session, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	p := &game.Player{Id: id, Name: name}
	a.Enter(p)
	return &Session{
		conn:   buf,
		player: p,
		area:   a,
		msgs:   make(chan []byte, 16),
	}, buf
}

// mustExec runs a command line and fails the test on connection errors.
func mustExec(t *testing.T, s *Session, line string) {
	t.Helper()
	parts := strings.Fields(line)
	if _, err := s.exec(parts[0], parts[1:]); err != nil {
		t.Fatalf("exec %q: %v", line, err)
	}
}

func TestExecJoin(t *testing.T) {
	s, buf := newTestSession(newTestArea(), "p1", "Alice")

	mustExec(t, s, "join")
	if !strings.Contains(buf.String(), "You're in") {
		t.Errorf("missing join confirmation: %q", buf.String())
	}
}

func TestExecRejectsRuleViolations(t *testing.T) {
	s, buf := newTestSession(newTestArea(), "p1", "Alice")

	tests := map[string]string{
		"fire before game":  "fire 0 0",
		"ready before game": "ready",
		"leave before game": "leave",
	}

	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			buf.Reset()
			mustExec(t, s, line)
			if !strings.Contains(buf.String(), "You can't do that") {
				t.Errorf("expected rejection, got %q", buf.String())
			}
		})
	}
}

func TestExecUnknownCommand(t *testing.T) {
	s, buf := newTestSession(newTestArea(), "p1", "Alice")

	mustExec(t, s, "dance")
	if !strings.Contains(buf.String(), "Unknown command") {
		t.Errorf("expected unknown-command reply, got %q", buf.String())
	}
}

func TestExecQuit(t *testing.T) {
	s, _ := newTestSession(newTestArea(), "p1", "Alice")

	quit, err := s.exec("quit", nil)
	if err != nil {
		t.Fatalf("exec quit: %v", err)
	}
	testutil.AssertEqual(t, "quit", quit, true)
}

func TestPlaceUsage(t *testing.T) {
	s, buf := newTestSession(newTestArea(), "p1", "Alice")

	mustExec(t, s, "place")
	if !strings.Contains(buf.String(), "Usage") {
		t.Errorf("expected usage line, got %q", buf.String())
	}

	buf.Reset()
	mustExec(t, s, "place rowboat 0 0")
	if !strings.Contains(buf.String(), "unknown boat kind") {
		t.Errorf("expected kind rejection, got %q", buf.String())
	}

	buf.Reset()
	mustExec(t, s, "place cruiser zero 0")
	if !strings.Contains(buf.String(), "row must be a number") {
		t.Errorf("expected coordinate rejection, got %q", buf.String())
	}
}

// TestFullGameFlow drives two sessions through an entire game with text
// commands only.
func TestFullGameFlow(t *testing.T) {
	a := newTestArea()
	blue, blueBuf := newTestSession(a, "p1", "Alice")
	green, greenBuf := newTestSession(a, "p2", "Bob")

	mustExec(t, blue, "join")
	mustExec(t, green, "join")

	for row, kind := range board.Kinds() {
		line := fmt.Sprintf("place %s %d 0", kind, row)
		mustExec(t, blue, line)
		mustExec(t, green, line)
	}

	mustExec(t, blue, "ready")
	mustExec(t, green, "ready")

	m := a.Model()
	if m.Game == nil {
		t.Fatal("no game after ready")
	}
	testutil.AssertEqual(t, "status", m.Game.Status, game.StatusInProgress)

	// Blue sinks the fleet; green fires into empty water.
	var blueTargets []string
	for row, kind := range board.Kinds() {
		for col := 0; col < kind.Length(); col++ {
			blueTargets = append(blueTargets, fmt.Sprintf("fire %d %d", row, col))
		}
	}
	greenTargets := make([]string, 0, len(blueTargets))
	for col := 0; col < board.Size; col++ {
		greenTargets = append(greenTargets, fmt.Sprintf("fire 9 %d", col))
		greenTargets = append(greenTargets, fmt.Sprintf("fire 8 %d", col))
	}

	for i := 0; ; i++ {
		m = a.Model()
		if m.Game.Status == game.StatusOver {
			break
		}
		if m.Game.Turn == game.ColorBlue {
			mustExec(t, blue, blueTargets[0])
			blueTargets = blueTargets[1:]
		} else {
			mustExec(t, green, greenTargets[0])
			greenTargets = greenTargets[1:]
		}
		if i > 50 {
			t.Fatal("game never finished")
		}
	}

	m = a.Model()
	if m.Game.Winner == nil || m.Game.Winner.Name != "Alice" {
		t.Fatalf("expected Alice to win, got %+v", m.Game.Winner)
	}
	if !strings.Contains(blueBuf.String(), "Direct hit!") {
		t.Error("blue never saw a hit report")
	}
	if !strings.Contains(greenBuf.String(), "Splash") {
		t.Error("green never saw a miss report")
	}
}

func TestBoardCommandShowsBoards(t *testing.T) {
	a := newTestArea()
	s, buf := newTestSession(a, "p1", "Alice")

	mustExec(t, s, "board")
	if !strings.Contains(buf.String(), "No game underway") {
		t.Errorf("expected idle reply, got %q", buf.String())
	}

	other, _ := newTestSession(a, "p2", "Bob")
	mustExec(t, s, "join")
	mustExec(t, other, "join")
	mustExec(t, s, "place destroyer 0 0")
	buf.Reset()
	mustExec(t, s, "board")
	if !strings.Contains(buf.String(), "Your board") {
		t.Errorf("expected board output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "S") {
		t.Errorf("expected own boat visible, got %q", buf.String())
	}
}
