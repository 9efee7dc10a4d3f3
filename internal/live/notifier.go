package live

import (
	"time"

	"gridboard/internal/events"
)

// NewNotifier starts a goroutine pumping bus updates into the hub as
// "refresh" messages. It stops when the bus channel is closed.
func NewNotifier(bus *events.Bus, hub *Hub) {
	go func() {
		for ev := range bus.Updates {
			hub.Broadcast(ServerMessage{
				Type:        "refresh",
				Season:      ev.Season,
				Week:        ev.Week,
				Players:     ev.Players,
				TopScore:    ev.TopScore,
				GeneratedAt: ev.GeneratedAt.Format(time.RFC3339),
			})
		}
	}()
}
