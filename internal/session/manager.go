package session

import (
	"context"
	"fmt"
	"io"
	"sort"
	"unicode"

	"github.com/google/uuid"

	"github.com/pixil98/go-battleship/internal"
	"github.com/pixil98/go-battleship/internal/arena"
	"github.com/pixil98/go-battleship/internal/game"
	"github.com/pixil98/go-battleship/internal/messaging"
)

// Subscriber delivers messages published on a subject. The returned function
// tears the subscription down.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Manager turns accepted connections into interactive player sessions.
type Manager struct {
	areas *arena.Manager
	sub   Subscriber
}

func NewManager(areas *arena.Manager, sub Subscriber) *Manager {
	return &Manager{
		areas: areas,
		sub:   sub,
	}
}

func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// RunSession owns one connection for its whole lifetime: greet, pick an
// area, then loop on commands until the player quits or the link drops.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	conn.Write([]byte("Welcome to Battleship!\n"))

	var name string
	for {
		var err error
		name, err = internal.Prompt(conn, "By what name do you wish to be known? ",
			internal.WithValidator(func(str string) (bool, string) {
				if len(str) == 0 {
					return false, "Invalid name, please try another.\n"
				}
				for _, r := range str {
					if !unicode.IsLetter(r) {
						return false, "Invalid name, please try another.\n"
					}
				}
				return true, ""
			}),
		)
		if err != nil {
			return err
		}

		ok, err := internal.PromptYN(conn, fmt.Sprintf("Did I get that right, %s (Y/N)? ", name))
		if err != nil {
			return err
		}
		if ok {
			break
		}
	}

	p := &game.Player{
		Id:   uuid.NewString(),
		Name: name,
	}

	area, err := m.chooseArea(conn)
	if err != nil {
		return err
	}

	area.Enter(p)
	defer area.Exit(p)

	s := &Session{
		conn:   conn,
		player: p,
		area:   area,
		msgs:   make(chan []byte, 16),
	}

	if m.sub != nil {
		unsub, err := m.sub.Subscribe(messaging.AreaSubject(area.Id()), s.receive)
		if err != nil {
			return fmt.Errorf("subscribing to area %s: %w", area.Id(), err)
		}
		defer unsub()
	}

	return s.run(ctx)
}

func (m *Manager) chooseArea(conn io.ReadWriter) (*arena.Area, error) {
	areas := m.areas.Areas()

	ids := make([]string, 0, len(areas))
	for id := range areas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if len(ids) == 1 {
		return areas[ids[0]], nil
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = areas[id].Name()
	}

	choice, err := internal.Select(conn, "Where would you like to play? ", names)
	if err != nil {
		return nil, err
	}
	return areas[ids[choice]], nil
}
