package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-battleship/internal/arena"
	"github.com/pixil98/go-battleship/internal/driver"
	"github.com/pixil98/go-battleship/internal/listener"
	"github.com/pixil98/go-battleship/internal/messaging"
	"github.com/pixil98/go-battleship/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Create the nats server carrying area change notifications
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	notifier := messaging.NewAreaNotifier(natsServer)

	// Load area definitions and build the runtime areas
	areaStore, err := cfg.Storage.BuildAreaStore()
	if err != nil {
		return nil, fmt.Errorf("creating area store: %w", err)
	}
	areaManager, err := arena.NewManager(areaStore, notifier)
	if err != nil {
		return nil, fmt.Errorf("creating area manager: %w", err)
	}

	// Sessions bridge connections to areas
	sessionManager := session.NewManager(areaManager, natsServer)
	connManager := listener.NewConnectionManager(sessionManager)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(connManager)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Setup the driver
	tick, err := time.ParseDuration(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}
	drv := driver.NewDriver(
		[]driver.Manager{areaManager},
		driver.WithTickLength(tick),
	)

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"driver":    drv,
		"sessions":  sessionManager,
		"listeners": &listeners,
	}, nil
}
