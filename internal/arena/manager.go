package arena

import (
	"context"
	"fmt"

	"github.com/pixil98/go-battleship/internal/storage"
	"github.com/pixil98/go-log"
)

// Manager owns every area in the space. Areas share no state, so commands
// against different areas run fully in parallel.
type Manager struct {
	areas map[string]*Area
}

// NewManager instantiates one runtime area per stored definition.
func NewManager(store storage.Storer[*AreaSpec], n Notifier) (*Manager, error) {
	areas := make(map[string]*Area)
	for id, spec := range store.GetAll() {
		areas[id] = NewArea(id, spec, n)
	}

	if len(areas) == 0 {
		return nil, fmt.Errorf("no areas defined")
	}

	return &Manager{areas: areas}, nil
}

// Area returns the area with the given id, or nil.
func (m *Manager) Area(id string) *Area {
	return m.areas[id]
}

// Areas returns all areas keyed by id.
func (m *Manager) Areas() map[string]*Area {
	out := make(map[string]*Area, len(m.areas))
	for id, a := range m.areas {
		out[id] = a
	}
	return out
}

// Tick sweeps abandoned games out of each area.
func (m *Manager) Tick(ctx context.Context) error {
	swept := 0
	for _, a := range m.areas {
		if a.sweep() {
			swept++
		}
	}
	if swept > 0 {
		log.GetLogger(ctx).Infof("swept %d abandoned game(s)", swept)
	}
	return nil
}
