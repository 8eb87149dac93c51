package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

type Config struct {
	Addr      string
	Password  string
	EventsTTL time.Duration
	SeatsTTL  time.Duration
}

// ValkeyClient caches list responses as raw JSON so cache hits skip both the
// database and re-marshaling. A nil *ValkeyClient is valid and disables caching.
type ValkeyClient struct {
	client rueidis.Client
	cfg    Config
}

const eventsListKey = "events:list"

func seatsKey(eventID string) string {
	return "seats:" + eventID
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.Addr},
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey: %w", err)
	}

	return &ValkeyClient{client: client, cfg: cfg}, nil
}

// GetEventsListRaw returns the cached events list response, or an error on miss.
func (v *ValkeyClient) GetEventsListRaw(ctx context.Context) ([]byte, error) {
	data, err := v.client.Do(ctx, v.client.B().Get().Key(eventsListKey).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("cache miss for %s", eventsListKey)
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (v *ValkeyClient) SetEventsListRaw(ctx context.Context, data []byte) error {
	cmd := v.client.B().Set().Key(eventsListKey).Value(rueidis.BinaryString(data)).
		Ex(v.cfg.EventsTTL).Build()
	return v.client.Do(ctx, cmd).Error()
}

func (v *ValkeyClient) InvalidateEventsList(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Del().Key(eventsListKey).Build()).Error()
}

// GetSeatsRaw returns the cached seat list for an event, or an error on miss.
func (v *ValkeyClient) GetSeatsRaw(ctx context.Context, eventID string) ([]byte, error) {
	data, err := v.client.Do(ctx, v.client.B().Get().Key(seatsKey(eventID)).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("cache miss for %s", seatsKey(eventID))
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (v *ValkeyClient) SetSeatsRaw(ctx context.Context, eventID string, data []byte) error {
	cmd := v.client.B().Set().Key(seatsKey(eventID)).Value(rueidis.BinaryString(data)).
		Ex(v.cfg.SeatsTTL).Build()
	return v.client.Do(ctx, cmd).Error()
}

// InvalidateSeats drops the cached seat list for an event. Called by the
// consumers when an order commits, so a reserved seat never outlives SeatsTTL.
func (v *ValkeyClient) InvalidateSeats(ctx context.Context, eventID string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(seatsKey(eventID)).Build()).Error()
}

func (v *ValkeyClient) Close() error {
	v.client.Close()
	return nil
}
