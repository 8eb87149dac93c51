package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "matchday/internal/errors"
	"matchday/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	events    []models.Event
	lastQuery string
}

func (f *fakeEventService) List(_ context.Context, query string) ([]models.Event, error) {
	f.lastQuery = query
	return f.events, nil
}

type fakeSeatService struct {
	seats []models.Seat
	err   error
}

func (f *fakeSeatService) List(_ context.Context, eventID string, status *string) ([]models.Seat, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.seats, nil
}

type fakeUserService struct {
	users []models.User
}

func (f *fakeUserService) Create(_ context.Context, req *models.CreateUserRequest) (*models.User, error) {
	return &models.User{
		ID:        "5a6b7c8d-1e2f-4a3b-9c0d-e1f2a3b4c5d6",
		Name:      req.Name,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeUserService) List(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

func setupQueryRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/events", h.ListEvents)
	r.GET("/orders/events", h.ListEvents)
	r.GET("/seats", h.ListSeats)
	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)

	return r
}

func TestListEvents(t *testing.T) {
	fake := &fakeEventService{events: []models.Event{
		{ID: "e1", Name: "FC Astana vs Kairat Almaty", StartsAt: time.Now()},
		{ID: "e2", Name: "Aktobe vs Shakhter Karagandy", StartsAt: time.Now()},
	}}
	r := setupQueryRouter(&Handlers{events: fake})

	req, _ := http.NewRequest("GET", "/events?query=astana", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "astana", fake.lastQuery)

	var response models.ListEventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Events, 2)
}

// The legacy alias must serve the same payload as the flat path.
func TestListEventsAlias(t *testing.T) {
	fake := &fakeEventService{events: []models.Event{{ID: "e1", Name: "Derby"}}}
	r := setupQueryRouter(&Handlers{events: fake})

	req, _ := http.NewRequest("GET", "/orders/events", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.ListEventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Events, 1)
}

func TestListSeats(t *testing.T) {
	fake := &fakeSeatService{seats: []models.Seat{
		{ID: "s1", EventID: "e1", Label: "A1", Status: models.SeatAvailable},
		{ID: "s2", EventID: "e1", Label: "A2", Status: models.SeatReserved},
	}}
	r := setupQueryRouter(&Handlers{seats: fake})

	req, _ := http.NewRequest("GET", "/seats?event_id=7b7e1f3a-4a44-4cf5-9f3d-0d5a1f0a9b01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.ListSeatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Seats, 2)
	assert.Equal(t, models.SeatAvailable, response.Seats[0].Status)
}

func TestListSeatsValidation(t *testing.T) {
	r := setupQueryRouter(&Handlers{seats: &fakeSeatService{}})

	// Без обязательного параметра event_id
	req, _ := http.NewRequest("GET", "/seats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// С некорректным event_id
	req, _ = http.NewRequest("GET", "/seats?event_id=abc", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListSeatsEventNotFound(t *testing.T) {
	r := setupQueryRouter(&Handlers{seats: &fakeSeatService{err: apperrors.ErrEventNotFound}})

	req, _ := http.NewRequest("GET", "/seats?event_id=7b7e1f3a-4a44-4cf5-9f3d-0d5a1f0a9b01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUser(t *testing.T) {
	r := setupQueryRouter(&Handlers{users: &fakeUserService{}})

	jsonBody, _ := json.Marshal(models.CreateUserRequest{Name: "Dana"})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.CreateUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Dana", response.User.Name)
	assert.NotEmpty(t, response.User.ID)
}

func TestCreateUserMissingName(t *testing.T) {
	r := setupQueryRouter(&Handlers{users: &fakeUserService{}})

	req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsersEmpty(t *testing.T) {
	r := setupQueryRouter(&Handlers{users: &fakeUserService{}})

	req, _ := http.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":[]}`, w.Body.String())
}
