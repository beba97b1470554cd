package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBackends(t *testing.T) (*Proxy, *string, *string) {
	t.Helper()

	var bookingRequestID, hotelRequestID string
	booking := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bookingRequestID = r.Header.Get(requestIDHeader)
		w.Write([]byte("booking"))
	}))
	t.Cleanup(booking.Close)
	hotel := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hotelRequestID = r.Header.Get(requestIDHeader)
		w.Write([]byte("hotel"))
	}))
	t.Cleanup(hotel.Close)

	proxy, err := New(booking.URL, hotel.URL)
	assert.NoError(t, err)
	return proxy, &bookingRequestID, &hotelRequestID
}

func TestProxy_RoutesBookingPaths(t *testing.T) {
	proxy, bookingRequestID, _ := newBackends(t)

	w := httptest.NewRecorder()
	proxy.ServeHTTP(w, httptest.NewRequest("GET", "/api/bookings/bookings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "booking", w.Body.String())
	assert.NotEmpty(t, *bookingRequestID)
}

func TestProxy_RoutesHotelAndRoomPaths(t *testing.T) {
	proxy, _, hotelRequestID := newBackends(t)

	for _, path := range []string{"/api/hotels", "/api/rooms/7/release"} {
		w := httptest.NewRecorder()
		proxy.ServeHTTP(w, httptest.NewRequest("POST", path, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hotel", w.Body.String())
	}
	assert.NotEmpty(t, *hotelRequestID)
}

func TestProxy_PropagatesExistingRequestID(t *testing.T) {
	proxy, bookingRequestID, _ := newBackends(t)

	r := httptest.NewRequest("GET", "/api/bookings/bookings", nil)
	r.Header.Set(requestIDHeader, "req-123")
	proxy.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "req-123", *bookingRequestID)
}

func TestProxy_UnknownPathIs404(t *testing.T) {
	proxy, _, _ := newBackends(t)

	w := httptest.NewRecorder()
	proxy.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("://bad", "http://localhost:8082")
	assert.Error(t, err)
}
