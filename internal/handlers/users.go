package handlers

import (
	"log/slog"
	"net/http"

	"matchday/internal/models"

	"github.com/gin-gonic/gin"
)

// Users handlers

// CreateUser - POST /users
// Создать пользователя
func (h *Handlers) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name required"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"})
		return
	}

	c.JSON(http.StatusCreated, models.CreateUserResponse{User: user})
}

// ListUsers - GET /users
// Получить список пользователей
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"})
		return
	}

	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, models.ListUsersResponse{Users: users})
}
