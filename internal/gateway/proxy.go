package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"hotelbooking/internal/logger"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Proxy fronts the booking and hotel services, tagging every request with a
// request id and logging the routing decision.
type Proxy struct {
	booking *httputil.ReverseProxy
	hotel   *httputil.ReverseProxy
}

func New(bookingURL, hotelURL string) (*Proxy, error) {
	booking, err := newReverseProxy(bookingURL)
	if err != nil {
		return nil, fmt.Errorf("booking proxy: %w", err)
	}
	hotel, err := newReverseProxy(hotelURL)
	if err != nil {
		return nil, fmt.Errorf("hotel proxy: %w", err)
	}
	return &Proxy{booking: booking, hotel: hotel}, nil
}

func newReverseProxy(rawURL string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(requestIDHeader, requestID)
	}

	logger.InfoLogger.WithFields(map[string]interface{}{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": requestID,
	}).Info("gateway request")

	switch {
	case strings.HasPrefix(r.URL.Path, "/api/bookings"):
		p.booking.ServeHTTP(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/hotels"), strings.HasPrefix(r.URL.Path, "/api/rooms"):
		p.hotel.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}
