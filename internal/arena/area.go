package arena

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-battleship/internal/game"
	"github.com/pixil98/go-errors"
)

// Bounds is an area's rectangular region in the shared space.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AreaSpec is an area definition loaded from asset files.
type AreaSpec struct {
	Name   string `json:"name"`
	Bounds Bounds `json:"bounds"`
}

// Validate satisfies storage.ValidatingSpec.
func (s *AreaSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if s.Bounds.Width < 1 || s.Bounds.Height < 1 {
		el.Add(fmt.Errorf("bounds must be at least 1x1"))
	}

	return el.Err()
}

// Notifier receives the area's externally visible snapshot after every
// successful state-changing command.
type Notifier interface {
	AreaChanged(m *Model) error
}

// Area hosts at most one live game plus the occupant roster and the
// append-only history of completed-game results. It is the sole entry point
// for external commands against its game; all dispatch for one area is
// serialized, so commands apply atomically in arrival order.
type Area struct {
	mu sync.Mutex

	id       string
	spec     *AreaSpec
	notifier Notifier

	occupants []*game.Player
	game      game.Game
	history   []game.Result
}

// NewArea creates an empty area from its definition.
func NewArea(id string, spec *AreaSpec, n Notifier) *Area {
	return &Area{
		id:       id,
		spec:     spec,
		notifier: n,
	}
}

// Id returns the area's identifier.
func (a *Area) Id() string {
	return a.id
}

// Name returns the area's display name.
func (a *Area) Name() string {
	return a.spec.Name
}

// Enter adds a player to the occupant roster. Occupancy is independent of
// game membership. Re-entering is a no-op.
func (a *Area) Enter(p *game.Player) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, o := range a.occupants {
		if o.Id == p.Id {
			return
		}
	}
	a.occupants = append(a.occupants, p)
	a.notify()
}

// Exit removes a player from the occupant roster. A player who still holds
// a slot in the live game leaves it too, forfeiting if the game is underway.
func (a *Area) Exit(p *game.Player) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, o := range a.occupants {
		if o.Id == p.Id {
			a.occupants = append(a.occupants[:i], a.occupants[i+1:]...)
			break
		}
	}

	if b, ok := a.game.(*game.Battleship); ok {
		wasOver := b.Status() == game.StatusOver
		if err := b.Leave(p); err == nil {
			if !wasOver && b.Status() == game.StatusOver {
				a.history = append(a.history, b.Result())
			}
		}
	}
	a.notify()
}

// Dispatch routes one command from the acting player into the area's game.
// JoinGame returns the (possibly new) game's id; every other command returns
// an empty id. On success the area signals exactly one change notification;
// on failure it signals nothing and propagates the game's error untouched.
func (a *Area) Dispatch(actor *game.Player, cmd game.Command) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch c := cmd.(type) {
	case game.JoinGame:
		if a.game == nil || a.game.Status() == game.StatusOver {
			var prior *game.Battleship
			if b, ok := a.game.(*game.Battleship); ok {
				prior = b
			}
			a.game = game.NewBattleship(prior)
		}
		if err := a.game.Join(actor); err != nil {
			return "", err
		}
		a.notify()
		return a.game.ID(), nil

	case game.StartGame:
		b, err := a.live(c.GameID)
		if err != nil {
			return "", err
		}
		if err := b.Start(actor); err != nil {
			return "", err
		}
		a.notify()
		return "", nil

	case game.SetUpGameMove:
		b, err := a.live(c.GameID)
		if err != nil {
			return "", err
		}
		if c.Remove {
			err = b.RemoveBoat(actor, c.Setup)
		} else {
			err = b.PlaceBoat(actor, c.Setup)
		}
		if err != nil {
			return "", err
		}
		a.notify()
		return "", nil

	case game.GameMove:
		b, err := a.live(c.GameID)
		if err != nil {
			return "", err
		}
		if err := b.ApplyMove(actor, c.Move); err != nil {
			return "", err
		}
		// The terminal move and its history entry are one atomic step:
		// both happen under the area lock before the change is signaled.
		if b.Status() == game.StatusOver {
			a.history = append(a.history, b.Result())
		}
		a.notify()
		return "", nil

	case game.LeaveGame:
		b, err := a.live(c.GameID)
		if err != nil {
			return "", err
		}
		wasOver := b.Status() == game.StatusOver
		if err := b.Leave(actor); err != nil {
			return "", err
		}
		if !wasOver && b.Status() == game.StatusOver {
			a.history = append(a.history, b.Result())
		}
		a.notify()
		return "", nil

	default:
		return "", game.ErrInvalidCommand
	}
}

// live resolves the current battleship game, enforcing the id-matching
// discipline shared by every command that targets a running game.
func (a *Area) live(gameID string) (*game.Battleship, error) {
	if a.game == nil {
		return nil, game.ErrGameNotInProgress
	}
	b, ok := a.game.(*game.Battleship)
	if !ok {
		return nil, game.ErrInvalidCommand
	}
	if b.ID() != gameID {
		return nil, game.ErrGameIdMismatch
	}
	return b, nil
}

// sweep drops a live game whose roster emptied before it ever started, so
// the next join gets a fresh instance without stale slot preferences.
// Returns true if the area changed.
func (a *Area) sweep() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.game == nil {
		return false
	}
	if a.game.Status() != game.StatusWaitingForPlayers || len(a.game.Players()) > 0 {
		return false
	}

	a.game = nil
	a.notify()
	return true
}

// notify signals the area's current snapshot. Callers must hold the lock.
// Notification failures are logged, never surfaced: the command already
// succeeded.
func (a *Area) notify() {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.AreaChanged(a.model()); err != nil {
		slog.Warn("publishing area change", "area", a.id, "error", err)
	}
}

// Model returns the area's externally visible snapshot.
func (a *Area) Model() *Model {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.model()
}
