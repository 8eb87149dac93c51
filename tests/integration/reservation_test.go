package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Submitting the same token twice returns the same order both times and the
// seat flips to reserved exactly once.
func TestReservationIdempotentReplay(t *testing.T) {
	c := NewClient(t)

	events := c.ListEvents(t)
	require.NotEmpty(t, events)

	user := c.CreateUser(t, fmt.Sprintf("Replay Tester %d", time.Now().UnixNano()))
	seat := FindAvailableSeat(t, c.ListSeats(t, events[0].ID))
	token := "replay-" + uuid.New().String()

	code, first := c.CreateOrder(t, token, user.ID, seat.ID)
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, first)
	assert.False(t, first.Idempotent)
	assert.Equal(t, "pending", first.Order.Status)

	code, second := c.CreateOrder(t, token, user.ID, seat.ID)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, second)
	assert.True(t, second.Idempotent)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	// The seat was reserved exactly once.
	for _, s := range c.ListSeats(t, events[0].ID) {
		if s.ID == seat.ID {
			assert.Equal(t, "reserved", s.Status)
		}
	}
}

// N concurrent requests with distinct tokens race for one seat: exactly one
// wins, the rest get 409.
func TestReservationMutualExclusion(t *testing.T) {
	c := NewClient(t)

	events := c.ListEvents(t)
	require.NotEmpty(t, events)

	user := c.CreateUser(t, fmt.Sprintf("Race Tester %d", time.Now().UnixNano()))
	seat := FindAvailableSeat(t, c.ListSeats(t, events[0].ID))

	const n = 10
	codes := make([]int, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("race-%s-%d", uuid.New().String(), i)
			codes[i], _ = c.CreateOrder(t, token, user.ID, seat.ID)
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}

func TestReservationSeatNotFound(t *testing.T) {
	c := NewClient(t)

	user := c.CreateUser(t, fmt.Sprintf("NotFound Tester %d", time.Now().UnixNano()))

	code, _ := c.CreateOrder(t, "nf-"+uuid.New().String(), user.ID, uuid.New().String())
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReservationRejectsBadInput(t *testing.T) {
	c := NewClient(t)

	// Missing idempotency token, independent of seat/user validity
	code, _ := c.CreateOrder(t, "", uuid.New().String(), uuid.New().String())
	assert.Equal(t, http.StatusBadRequest, code)

	// Malformed identifiers
	code, _ = c.CreateOrder(t, "bad-"+uuid.New().String(), "not-a-uuid", uuid.New().String())
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}
