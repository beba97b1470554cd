package hotel

import (
	"context"
	"errors"
	"time"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"github.com/jackc/pgx/v5"
)

type HotelUseCase interface {
	CreateHotel(ctx context.Context, name, address string) (*domain.Hotel, error)
	GetHotel(ctx context.Context, id int64) (*domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	CreateRoom(ctx context.Context, hotelID int64, number string, available bool) (*domain.Room, error)
	ListAvailableRooms(ctx context.Context) ([]domain.Room, error)
	ListRecommendedRooms(ctx context.Context) ([]domain.Room, error)
	ConfirmAvailability(ctx context.Context, roomID int64, bookingID string) error
	ReleaseRoom(ctx context.Context, roomID int64, bookingID string) error
	RoomStats(ctx context.Context, hotelID int64) (*RoomStats, error)
}

type RoomStats struct {
	HotelID          int64
	TotalRooms       int64
	AvailableRooms   int64
	TotalTimesBooked int64
}

type HotelService struct {
	hotels   repository.HotelRepository
	rooms    repository.RoomRepository
	leaseTTL time.Duration
	now      func() time.Time
}

func NewHotelService(hotels repository.HotelRepository, rooms repository.RoomRepository, leaseTTL time.Duration) *HotelService {
	if leaseTTL <= 0 {
		leaseTTL = 5 * time.Minute
	}
	return &HotelService{
		hotels:   hotels,
		rooms:    rooms,
		leaseTTL: leaseTTL,
		now:      time.Now,
	}
}

func (s *HotelService) CreateHotel(ctx context.Context, name, address string) (*domain.Hotel, error) {
	hotel := &domain.Hotel{Name: name, Address: address}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, apperr.Internal("failed to create hotel", err)
	}
	return hotel, nil
}

func (s *HotelService) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Hotel")
		}
		return nil, apperr.Internal("failed to load hotel", err)
	}
	return hotel, nil
}

func (s *HotelService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list hotels", err)
	}
	return hotels, nil
}

func (s *HotelService) CreateRoom(ctx context.Context, hotelID int64, number string, available bool) (*domain.Room, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	room := &domain.Room{HotelID: hotelID, Number: number, Available: available}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, apperr.Internal("failed to create room", err)
	}
	return room, nil
}

func (s *HotelService) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListAvailable(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list rooms", err)
	}
	return rooms, nil
}

func (s *HotelService) ListRecommendedRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.ListRecommended(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list recommended rooms", err)
	}
	return rooms, nil
}

// ConfirmAvailability grants or renews the room's lease for bookingID under
// a row lock. Holder-or-expired acceptance lives on domain.Room.
func (s *HotelService) ConfirmAvailability(ctx context.Context, roomID int64, bookingID string) error {
	_, err := s.rooms.Transition(ctx, roomID, func(room *domain.Room) error {
		return room.ConfirmLease(bookingID, s.now(), s.leaseTTL)
	})
	return s.mapLeaseError(err)
}

func (s *HotelService) ReleaseRoom(ctx context.Context, roomID int64, bookingID string) error {
	_, err := s.rooms.Transition(ctx, roomID, func(room *domain.Room) error {
		return room.ReleaseLease(bookingID)
	})
	return s.mapLeaseError(err)
}

func (s *HotelService) RoomStats(ctx context.Context, hotelID int64) (*RoomStats, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, apperr.Internal("failed to list hotel rooms", err)
	}

	stats := &RoomStats{HotelID: hotelID, TotalRooms: int64(len(rooms))}
	for _, room := range rooms {
		if room.Available {
			stats.AvailableRooms++
		}
		stats.TotalTimesBooked += room.TimesBooked
	}
	return stats, nil
}

func (s *HotelService) mapLeaseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperr.NotFound("Room")
	case errors.Is(err, domain.ErrRoomNotAvailable):
		return apperr.Conflict("Room is not available for booking")
	case errors.Is(err, domain.ErrRoomHeld):
		return apperr.Conflict("Room is temporarily held by another booking")
	default:
		return apperr.Internal("failed to update room lease", err)
	}
}

var _ HotelUseCase = (*HotelService)(nil)
