package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hotelbooking/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// Remote operation classes, each with its own breaker.
const (
	opConfirm   = "hotelConfirm"
	opRelease   = "hotelRelease"
	opRooms     = "hotelRooms"
	opRecommend = "hotelRecommend"
)

var (
	ErrConflict    = errors.New("hotel service rejected the request")
	ErrNotFound    = errors.New("hotel service resource not found")
	ErrUnavailable = errors.New("hotel service unavailable")
)

type ConfirmAvailabilityCommand struct {
	BookingID string `json:"bookingId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ReleaseCommand struct {
	BookingID string `json:"bookingId"`
}

type RoomSummary struct {
	ID          int64  `json:"id"`
	HotelID     int64  `json:"hotelId"`
	Number      string `json:"number"`
	Available   bool   `json:"available"`
	TimesBooked int64  `json:"timesBooked"`
}

// HotelClient wraps the inventory service's REST operations with bounded
// retry and a per-operation circuit breaker. Business rejections (4xx) stop
// the retry loop immediately and do not count as breaker failures.
type HotelClient struct {
	baseURL    string
	httpClient *http.Client
	breakers   *BreakerRegistry

	maxRetries      uint64
	initialInterval time.Duration
}

func NewHotelClient(cfg config.ClientConfig, breakers *BreakerRegistry) *HotelClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	initial := time.Duration(cfg.BackoffInitialMS) * time.Millisecond
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &HotelClient{
		baseURL:         cfg.BaseURL,
		httpClient:      &http.Client{Timeout: timeout},
		breakers:        breakers,
		maxRetries:      uint64(retries),
		initialInterval: initial,
	}
}

func (c *HotelClient) ConfirmAvailability(ctx context.Context, roomID int64, command ConfirmAvailabilityCommand) error {
	path := fmt.Sprintf("/api/rooms/%d/confirm-availability", roomID)
	return c.call(ctx, opConfirm, http.MethodPost, path, command, nil)
}

func (c *HotelClient) Release(ctx context.Context, roomID int64, command ReleaseCommand) error {
	path := fmt.Sprintf("/api/rooms/%d/release", roomID)
	return c.call(ctx, opRelease, http.MethodPost, path, command, nil)
}

func (c *HotelClient) GetAllRooms(ctx context.Context) ([]RoomSummary, error) {
	var rooms []RoomSummary
	if err := c.call(ctx, opRooms, http.MethodGet, "/api/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *HotelClient) GetRecommendedRooms(ctx context.Context) ([]RoomSummary, error) {
	var rooms []RoomSummary
	if err := c.call(ctx, opRecommend, http.MethodGet, "/api/rooms/recommend", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *HotelClient) call(ctx context.Context, op, method, path string, body, out any) error {
	cb := c.breakers.Get(op)

	attempt := func() error {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, c.do(ctx, method, path, body, out)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return backoff.Permanent(fmt.Errorf("%w: circuit open for %s", ErrUnavailable, op))
		case errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
			return backoff.Permanent(err)
		default:
			return err
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// do performs one HTTP exchange. A transport failure or 5xx is returned as a
// plain error so the breaker records it; business 4xx maps to sentinel
// errors wrapped so the caller skips further retries.
func (c *HotelClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil {
			return json.Unmarshal(respBody, out)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: status %d", ErrConflict, resp.StatusCode)
	default:
		return fmt.Errorf("hotel service returned status %d", resp.StatusCode)
	}
}
