package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/client"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/kafka"
	"hotelbooking/internal/logger"
	"hotelbooking/internal/repository"

	"github.com/jackc/pgx/v5"
)

const dateFormat = "2006-01-02"

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID int64, input CreateBookingInput, idempotencyKey string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID int64) error
	GetBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int64, page, size int) ([]domain.Booking, error)
}

// HotelGateway is the remote inventory surface the saga drives. The
// concrete implementation wraps it in retry and circuit breaking; from here
// a failure is a failure regardless of its cause.
type HotelGateway interface {
	ConfirmAvailability(ctx context.Context, roomID int64, command client.ConfirmAvailabilityCommand) error
	Release(ctx context.Context, roomID int64, command client.ReleaseCommand) error
	GetAllRooms(ctx context.Context) ([]client.RoomSummary, error)
	GetRecommendedRooms(ctx context.Context) ([]client.RoomSummary, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	HotelID   int64
	RoomID    int64
	StartDate time.Time
	EndDate   time.Time
}

type BookingService struct {
	bookings        repository.BookingRepository
	hotel           HotelGateway
	producer        Producer
	bookingTopic    string
	defaultPageSize int
}

type BookingServiceOption func(*BookingService)

func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func NewBookingService(bookings repository.BookingRepository, hotel HotelGateway, defaultPageSize int, opts ...BookingServiceOption) *BookingService {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	service := &BookingService{
		bookings:        bookings,
		hotel:           hotel,
		defaultPageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking runs the reservation saga: reserve locally as PENDING,
// confirm the lease with the hotel service, then finalize. A remote failure
// compensates by cancelling the local row; the CANCELLED row stays as an
// audit record and never blocks the dates again.
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, input CreateBookingInput, idempotencyKey string) (*domain.Booking, error) {
	if !input.StartDate.Before(input.EndDate) {
		return nil, apperr.BadRequest("Invalid date range")
	}

	if idempotencyKey != "" {
		existing, err := s.bookings.FindByIdempotencyKey(ctx, userID, idempotencyKey)
		if err != nil {
			return nil, apperr.Internal("failed to look up idempotency key", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	booking := &domain.Booking{
		UserID:         userID,
		HotelID:        input.HotelID,
		RoomID:         input.RoomID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		IdempotencyKey: idempotencyKey,
	}
	if err := s.bookings.ReserveIfFree(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, apperr.Conflict("Room is already booked for given dates")
		}
		return nil, apperr.Internal("failed to reserve booking", err)
	}
	if booking.Status != domain.BookingStatusPending {
		// A concurrent replay raced us through the unique idempotency index
		// and the winner already went through confirmation.
		return booking, nil
	}

	command := client.ConfirmAvailabilityCommand{
		BookingID: strconv.FormatInt(booking.ID, 10),
		StartDate: booking.StartDate.Format(dateFormat),
		EndDate:   booking.EndDate.Format(dateFormat),
	}
	if err := s.hotel.ConfirmAvailability(ctx, booking.RoomID, command); err != nil {
		logger.WarnLogger.WithError(err).Warnf("hotel confirm-availability failed for booking %d", booking.ID)
		cancelled, finErr := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusCancelled)
		if finErr != nil {
			return nil, apperr.Internal("failed to cancel unconfirmed booking", finErr)
		}
		s.publish(ctx, "booking_cancelled", cancelled)
		return nil, apperr.Conflict("Failed to confirm room availability")
	}

	confirmed, err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, apperr.Internal("failed to confirm booking", err)
	}
	s.publish(ctx, "booking_confirmed", confirmed)
	return confirmed, nil
}

// CancelBooking commits the local cancellation first; the remote release is
// a cleanup hint and its failure never reverts the cancellation.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID int64) error {
	booking, err := s.loadOwned(ctx, userID, bookingID)
	if err != nil {
		return err
	}

	cancelled, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		return apperr.Internal("failed to cancel booking", err)
	}

	command := client.ReleaseCommand{BookingID: strconv.FormatInt(bookingID, 10)}
	if err := s.hotel.Release(ctx, booking.RoomID, command); err != nil {
		logger.WarnLogger.WithError(err).Warnf("hotel release failed for booking %d", bookingID)
	}

	s.publish(ctx, "booking_cancelled", cancelled)
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	return s.loadOwned(ctx, userID, bookingID)
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64, page, size int) ([]domain.Booking, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = s.defaultPageSize
	}
	bookings, err := s.bookings.ListByUser(ctx, userID, page, size)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) loadOwned(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Booking")
		}
		return nil, apperr.Internal("failed to load booking", err)
	}
	if booking.UserID != userID {
		return nil, apperr.Forbidden("Access denied")
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		HotelID:   booking.HotelID,
		RoomID:    booking.RoomID,
		StartDate: booking.StartDate.Format(dateFormat),
		EndDate:   booking.EndDate.Format(dateFormat),
		Status:    string(booking.Status),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, strconv.FormatInt(booking.ID, 10), event); err != nil {
		logger.WarnLogger.WithError(err).Warnf("failed to publish %s event for booking %d", eventType, booking.ID)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
