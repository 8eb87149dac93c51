package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "matchday/internal/errors"
	"matchday/internal/middleware"
	"matchday/internal/models"
	"matchday/internal/validation"

	"github.com/gin-gonic/gin"
)

// Orders handlers

// CreateOrder - POST /orders
// Создать заказ: зарезервировать место ровно один раз на Idempotency-Key
func (h *Handlers) CreateOrder(c *gin.Context) {
	token := c.GetHeader("Idempotency-Key")
	if err := validation.Token(token); err != nil {
		middleware.RecordReservation("invalid")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RecordReservation("invalid")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "user_id and seat_id required"})
		return
	}

	// Identifier well-formedness is checked before any store access.
	if err := validation.ID("user_id", req.UserID); err != nil {
		middleware.RecordReservation("invalid")
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err := validation.ID("seat_id", req.SeatID); err != nil {
		middleware.RecordReservation("invalid")
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
		return
	}

	order, replay, err := h.orders.Reserve(c.Request.Context(), req.UserID, req.SeatID, token)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSeatNotFound):
			middleware.RecordReservation("seat_not_found")
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "seat not found"})
		case errors.Is(err, apperrors.ErrSeatUnavailable):
			middleware.RecordReservation("seat_unavailable")
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "seat not available"})
		default:
			middleware.RecordReservation("error")
			slog.Error("Failed to create order", "error", err, "seat_id", req.SeatID)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"})
		}
		return
	}

	if replay {
		middleware.RecordReservation("replayed")
		c.JSON(http.StatusOK, models.OrderResponse{Order: order, Idempotent: true})
		return
	}

	middleware.RecordReservation("created")
	c.JSON(http.StatusCreated, models.OrderResponse{Order: order})
}

// ListOrders - GET /orders
// Получить список заказов
func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list orders", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, models.ListOrdersResponse{Orders: orders})
}
