package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotelbooking/config"

	"github.com/stretchr/testify/assert"
)

func testClient(t *testing.T, handler http.Handler) (*HotelClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.ClientConfig{
		BaseURL:          server.URL,
		TimeoutSeconds:   2,
		MaxRetries:       2,
		BackoffInitialMS: 1,
	}
	return NewHotelClient(cfg, NewBreakerRegistry(3, time.Minute)), server
}

func TestHotelClient_ConfirmAvailability_Success(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rooms/7/confirm-availability", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	err := client.ConfirmAvailability(context.Background(), 7, ConfirmAvailabilityCommand{
		BookingID: "42",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	})

	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHotelClient_ConfirmAvailability_ConflictIsNotRetried(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusConflict)
	}))

	err := client.ConfirmAvailability(context.Background(), 7, ConfirmAvailabilityCommand{BookingID: "42"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHotelClient_ConfirmAvailability_NotFound(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.ConfirmAvailability(context.Background(), 7, ConfirmAvailabilityCommand{BookingID: "42"})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHotelClient_ServerErrorIsRetriedWithBound(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.ConfirmAvailability(context.Background(), 7, ConfirmAvailabilityCommand{BookingID: "42"})

	assert.ErrorIs(t, err, ErrUnavailable)
	// initial attempt plus MaxRetries
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHotelClient_RecoversMidRetry(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	err := client.ConfirmAvailability(context.Background(), 7, ConfirmAvailabilityCommand{BookingID: "42"})

	assert.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHotelClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx := context.Background()

	// Each call burns 3 attempts against a threshold of 3, so the circuit
	// opens during the first call and the second fails without touching the
	// server.
	err := client.ConfirmAvailability(ctx, 7, ConfirmAvailabilityCommand{BookingID: "42"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	err = client.ConfirmAvailability(ctx, 7, ConfirmAvailabilityCommand{BookingID: "43"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHotelClient_BreakersArePerOperation(t *testing.T) {
	var confirmCalls, roomsCalls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/rooms" {
			atomic.AddInt32(&roomsCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"hotelId":1,"number":"101","available":true,"timesBooked":3}]`))
			return
		}
		atomic.AddInt32(&confirmCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx := context.Background()

	err := client.ConfirmAvailability(ctx, 7, ConfirmAvailabilityCommand{BookingID: "42"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&confirmCalls))

	// The confirm breaker is open; the rooms operation still goes through.
	rooms, err := client.GetAllRooms(ctx)
	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, "101", rooms[0].Number)
	assert.Equal(t, int32(1), atomic.LoadInt32(&roomsCalls))
}

func TestHotelClient_ConflictsDoNotOpenBreaker(t *testing.T) {
	var calls int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusConflict)
	}))

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		err := client.ConfirmAvailability(ctx, 7, ConfirmAvailabilityCommand{BookingID: "42"})
		assert.ErrorIs(t, err, ErrConflict)
	}
	// One attempt each: rejections neither retry nor trip the circuit.
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestHotelClient_GetRecommendedRooms(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/recommend", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"hotelId":1,"number":"102","available":true,"timesBooked":1}]`))
	}))

	rooms, err := client.GetRecommendedRooms(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, int64(2), rooms[0].ID)
}

func TestHotelClient_ContextCancellationStopsRetry(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.ConfirmAvailability(ctx, 7, ConfirmAvailabilityCommand{BookingID: "42"})
	assert.Error(t, err)
}
