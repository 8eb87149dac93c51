package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"matchday/internal/models"

	"github.com/gin-gonic/gin"
)

// Events handlers

// ListEvents - GET /events
// Получить список событий (полнотекстовый поиск через ?query=)
func (h *Handlers) ListEvents(c *gin.Context) {
	query := c.Query("query")

	// Only the unfiltered list is cached; search results change per query.
	if query == "" && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetEventsListRaw(c.Request.Context())
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	events, err := h.events.List(c.Request.Context(), query)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"})
		return
	}

	if events == nil {
		events = []models.Event{}
	}

	response := models.ListEventsResponse{Events: events}

	if query == "" && h.valkeyClient != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := h.valkeyClient.SetEventsListRaw(c.Request.Context(), data); err != nil {
				slog.Warn("Failed to cache events list", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}
