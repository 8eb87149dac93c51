package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/internal/models"
)

func TestHealth(t *testing.T) {
	c := NewClient(t)

	var response map[string]interface{}
	code := c.getJSON(t, "/health", &response)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, response["ok"])
}

func TestListEndpoints(t *testing.T) {
	c := NewClient(t)

	events := c.ListEvents(t)
	require.NotEmpty(t, events, "expected seeded demo events")

	seats := c.ListSeats(t, events[0].ID)
	assert.NotEmpty(t, seats)

	// Legacy aliases serve the same payloads
	var aliased models.ListEventsResponse
	code := c.getJSON(t, "/orders/events", &aliased)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, len(events), len(aliased.Events))
}

func TestListSeatsUnknownEvent(t *testing.T) {
	c := NewClient(t)

	code := c.getJSON(t, "/seats?event_id=00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
