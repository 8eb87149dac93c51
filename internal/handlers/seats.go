package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "matchday/internal/errors"
	"matchday/internal/models"
	"matchday/internal/validation"

	"github.com/gin-gonic/gin"
)

// Seats handlers

// ListSeats - GET /seats?event_id=&status=
// Получить список мест события
func (h *Handlers) ListSeats(c *gin.Context) {
	eventID := c.Query("event_id")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "event_id is required"})
		return
	}
	if err := validation.ID("event_id", eventID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
		return
	}

	var status *string
	if statusParam := c.Query("status"); statusParam != "" {
		status = &statusParam
	}

	// Cache only unfiltered seat lists, with a short TTL; the consumers drop
	// the key as soon as an order commits.
	if status == nil && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetSeatsRaw(c.Request.Context(), eventID)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	seats, err := h.seats.List(c.Request.Context(), eventID, status)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "event not found"})
			return
		}
		slog.Error("Failed to list seats", "error", err, "event_id", eventID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"})
		return
	}

	if seats == nil {
		seats = []models.Seat{}
	}

	response := models.ListSeatsResponse{Seats: seats}

	if status == nil && h.valkeyClient != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := h.valkeyClient.SetSeatsRaw(c.Request.Context(), eventID, data); err != nil {
				slog.Warn("Failed to cache seats list", "error", err, "event_id", eventID)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}
