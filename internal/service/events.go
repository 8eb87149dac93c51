package service

import (
	"context"
	"fmt"

	"matchday/internal/logger"
	"matchday/internal/models"
	"matchday/internal/repository"
	"matchday/internal/search"
)

const searchResultLimit = 50

type EventService struct {
	eventRepo    *repository.EventRepository
	searchClient *search.ElasticsearchClient
}

func NewEventService(eventRepo *repository.EventRepository, searchClient *search.ElasticsearchClient) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		searchClient: searchClient,
	}
}

// List returns all events, or full-text matches when query is set. Search
// goes through Elasticsearch when configured and falls back to an ILIKE scan
// otherwise; Postgres rows are always the canonical response.
func (s *EventService) List(ctx context.Context, query string) ([]models.Event, error) {
	if query == "" {
		events, err := s.eventRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
		return events, nil
	}

	if s.searchClient != nil {
		ids, err := s.searchClient.SearchEventIDs(ctx, query, searchResultLimit)
		if err == nil {
			events, err := s.eventRepo.GetByIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("failed to load searched events: %w", err)
			}
			return events, nil
		}
		logger.WithContext(ctx).Error("Elasticsearch query failed, falling back to database search",
			"error", err,
			"query", query)
	}

	events, err := s.eventRepo.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	return events, nil
}

// Index pushes an event into the search index. Indexing failures are logged
// and swallowed: search is an accelerator, not a source of truth.
func (s *EventService) Index(ctx context.Context, event *models.Event) {
	if s.searchClient == nil {
		return
	}
	if err := s.searchClient.IndexEvent(ctx, event); err != nil {
		logger.WithContext(ctx).Error("Failed to index event",
			"error", err,
			"event_id", event.ID)
	}
}
