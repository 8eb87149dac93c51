package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"matchday/internal/models"
)

// Client is a thin HTTP client for the running API. The suite is skipped
// unless MATCHDAY_API_URL points at a live server with seeded demo data.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(t *testing.T) *Client {
	t.Helper()

	baseURL := os.Getenv("MATCHDAY_API_URL")
	if baseURL == "" {
		t.Skip("MATCHDAY_API_URL not set, skipping integration tests")
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) getJSON(t *testing.T, path string, out interface{}) int {
	t.Helper()

	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: failed to decode response: %v", path, err)
		}
	}

	return resp.StatusCode
}

func (c *Client) ListEvents(t *testing.T) []models.Event {
	var response models.ListEventsResponse
	if code := c.getJSON(t, "/events", &response); code != http.StatusOK {
		t.Fatalf("list events returned %d", code)
	}
	return response.Events
}

func (c *Client) ListSeats(t *testing.T, eventID string) []models.Seat {
	var response models.ListSeatsResponse
	path := fmt.Sprintf("/seats?event_id=%s", eventID)
	if code := c.getJSON(t, path, &response); code != http.StatusOK {
		t.Fatalf("list seats returned %d", code)
	}
	return response.Seats
}

func (c *Client) CreateUser(t *testing.T, name string) models.User {
	body, _ := json.Marshal(models.CreateUserRequest{Name: name})

	resp, err := c.http.Post(c.baseURL+"/users", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user returned %d", resp.StatusCode)
	}

	var response models.CreateUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode create user response: %v", err)
	}
	return *response.User
}

// CreateOrder posts a reservation and returns the status code and decoded
// body. Most tests assert on the status; some also need the order.
func (c *Client) CreateOrder(t *testing.T, token, userID, seatID string) (int, *models.OrderResponse) {
	t.Helper()

	body, _ := json.Marshal(models.CreateOrderRequest{UserID: userID, SeatID: seatID})
	req, err := http.NewRequest("POST", c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build order request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Idempotency-Key", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	defer resp.Body.Close()

	var response models.OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, &response
}

// FindAvailableSeat returns some available seat of the event, or fails.
func FindAvailableSeat(t *testing.T, seats []models.Seat) *models.Seat {
	for i := range seats {
		if seats[i].Status == models.SeatAvailable {
			return &seats[i]
		}
	}
	t.Fatal("no available seat found")
	return nil
}
