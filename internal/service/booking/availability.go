package booking

import (
	"context"
	"net/http"
	"sort"
	"time"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/client"
	"hotelbooking/internal/logger"
	"hotelbooking/internal/repository"
)

type AvailabilityUseCase interface {
	GetAvailableRooms(ctx context.Context, startDate, endDate time.Time, hotelID int64, limit int, recommend bool) ([]AvailableRoom, error)
}

type AvailableRoom struct {
	ID          int64
	HotelID     int64
	Number      string
	TimesBooked int64
}

type RoomsCache interface {
	GetRooms(ctx context.Context, recommended bool) ([]client.RoomSummary, error)
	SetRooms(ctx context.Context, recommended bool, rooms []client.RoomSummary) error
}

// AvailabilityService answers "which rooms are free for these dates" by
// joining the hotel service's room list with the ledger's overlap predicate.
type AvailabilityService struct {
	bookings repository.BookingRepository
	hotel    HotelGateway
	cache    RoomsCache
}

func NewAvailabilityService(bookings repository.BookingRepository, hotel HotelGateway, cache RoomsCache) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, hotel: hotel, cache: cache}
}

func (s *AvailabilityService) GetAvailableRooms(ctx context.Context, startDate, endDate time.Time, hotelID int64, limit int, recommend bool) ([]AvailableRoom, error) {
	if !startDate.Before(endDate) {
		return nil, apperr.BadRequest("Invalid date range")
	}

	rooms, err := s.fetchRooms(ctx, recommend)
	if err != nil {
		return nil, err
	}

	var result []AvailableRoom
	for _, room := range rooms {
		if !room.Available {
			continue
		}
		if hotelID > 0 && room.HotelID != hotelID {
			continue
		}
		overlaps, err := s.bookings.HasOverlap(ctx, room.ID, startDate, endDate)
		if err != nil {
			return nil, apperr.Internal("failed to check room availability", err)
		}
		if overlaps {
			continue
		}
		result = append(result, AvailableRoom{
			ID:          room.ID,
			HotelID:     room.HotelID,
			Number:      room.Number,
			TimesBooked: room.TimesBooked,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if recommend && result[i].TimesBooked != result[j].TimesBooked {
			return result[i].TimesBooked < result[j].TimesBooked
		}
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *AvailabilityService) fetchRooms(ctx context.Context, recommend bool) ([]client.RoomSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRooms(ctx, recommend)
		if err != nil {
			logger.WarnLogger.WithError(err).Warn("rooms cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	var (
		rooms []client.RoomSummary
		err   error
	)
	if recommend {
		rooms, err = s.hotel.GetRecommendedRooms(ctx)
	} else {
		rooms, err = s.hotel.GetAllRooms(ctx)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUnavailable, "hotel service is temporarily unavailable", http.StatusServiceUnavailable)
	}

	if s.cache != nil {
		if err := s.cache.SetRooms(ctx, recommend, rooms); err != nil {
			logger.WarnLogger.WithError(err).Warn("rooms cache write failed")
		}
	}
	return rooms, nil
}

var _ AvailabilityUseCase = (*AvailabilityService)(nil)
