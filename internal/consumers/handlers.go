package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"matchday/internal/cache"
	"matchday/internal/models"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	valkey *cache.ValkeyClient
}

func NewHandlers(valkey *cache.ValkeyClient) *Handlers {
	return &Handlers{valkey: valkey}
}

// HandleOrderCreated drops the cached seat list of the affected event so the
// reserved seat shows up on the next read instead of after the cache TTL.
func (h *Handlers) HandleOrderCreated(msg *stan.Msg) {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Failed to unmarshal order created event", "error", err)
		return
	}

	slog.Info("Order created",
		"order_id", event.OrderID,
		"seat_id", event.SeatID,
		"event_id", event.EventID)

	if h.valkey != nil && event.EventID != "" {
		if err := h.valkey.InvalidateSeats(context.Background(), event.EventID); err != nil {
			slog.Error("Failed to invalidate seats cache",
				"error", err,
				"event_id", event.EventID)
		}
	}
}

func (h *Handlers) HandleUserCreated(msg *stan.Msg) {
	var event models.UserCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("Failed to unmarshal user created event", "error", err)
		return
	}

	slog.Info("User created", "user_id", event.UserID, "name", event.Name)
}
