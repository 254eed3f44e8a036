package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-battleship/internal/arena"
)

// AreaSubject returns the NATS subject carrying an area's change snapshots.
func AreaSubject(areaID string) string {
	return fmt.Sprintf("area.%s", areaID)
}

// AreaNotifier publishes area snapshots to the area's NATS subject. It
// satisfies arena.Notifier, so every successful command against an area
// results in exactly one snapshot on the wire.
type AreaNotifier struct {
	server *NatsServer
}

// NewAreaNotifier wraps a NatsServer for snapshot delivery.
func NewAreaNotifier(server *NatsServer) *AreaNotifier {
	return &AreaNotifier{server: server}
}

func (p *AreaNotifier) AreaChanged(m *arena.Model) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshalling area model: %w", err)
	}
	return p.server.Publish(AreaSubject(m.Id), data)
}
