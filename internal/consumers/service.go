package consumers

import (
	"context"
	"fmt"
	"log/slog"

	"matchday/internal/cache"
	"matchday/internal/config"
	"matchday/internal/database"
	"matchday/internal/messaging"
	"matchday/internal/models"
	"matchday/internal/repository"
	"matchday/internal/search"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	searchES *search.ElasticsearchClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL is required for the consumers service")
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Connect to NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	var valkeyClient *cache.ValkeyClient
	if cfg.Valkey.Addr != "" {
		valkeyClient, err = cache.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("Valkey unavailable, cache invalidation disabled", "error", err)
			valkeyClient = nil
		}
	}

	var searchClient *search.ElasticsearchClient
	if cfg.Elasticsearch.URL != "" {
		searchClient, err = search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, event indexing disabled", "error", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(valkeyClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		searchES: searchClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	if _, err := cs.nats.SubscribeQueue(models.EventOrderCreated, "consumers", cs.handlers.HandleOrderCreated); err != nil {
		return err
	}

	if _, err := cs.nats.SubscribeQueue(models.EventUserCreated, "consumers", cs.handlers.HandleUserCreated); err != nil {
		return err
	}

	// Warm up the search index from the canonical rows on every start.
	if cs.searchES != nil {
		if err := cs.reindexEvents(context.Background()); err != nil {
			slog.Error("Failed to reindex events", "error", err)
		}
	}

	return nil
}

func (cs *ConsumerService) reindexEvents(ctx context.Context) error {
	events, err := cs.repos.Events.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events for indexing: %w", err)
	}

	for i := range events {
		if err := cs.searchES.IndexEvent(ctx, &events[i]); err != nil {
			slog.Error("Failed to index event", "error", err, "event_id", events[i].ID)
		}
	}

	slog.Info("Reindexed events", "count", len(events))
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.valkey != nil {
		if err := cs.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}

	if cs.db != nil {
		return cs.db.Close()
	}

	return nil
}
