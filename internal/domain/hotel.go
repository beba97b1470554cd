package domain

import (
	"errors"
	"time"
)

type Hotel struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrRoomNotAvailable = errors.New("room is not available for booking")
	ErrRoomHeld         = errors.New("room is temporarily held by another booking")
)

// Room carries the inventory-side lease state. HolderBookingID and
// LeaseExpiry are either both set or both empty.
type Room struct {
	ID              int64
	HotelID         int64
	Number          string
	Available       bool
	TimesBooked     int64
	HolderBookingID string
	LeaseExpiry     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r *Room) leasedByOther(bookingID string, now time.Time) bool {
	return r.HolderBookingID != "" &&
		r.HolderBookingID != bookingID &&
		r.LeaseExpiry != nil &&
		r.LeaseExpiry.After(now)
}

// ConfirmLease grants or renews the hold for bookingID. A renewal by the
// current holder counts against TimesBooked again.
func (r *Room) ConfirmLease(bookingID string, now time.Time, ttl time.Duration) error {
	if !r.Available {
		return ErrRoomNotAvailable
	}
	if r.leasedByOther(bookingID, now) {
		return ErrRoomHeld
	}

	expiry := now.Add(ttl)
	r.HolderBookingID = bookingID
	r.LeaseExpiry = &expiry
	r.TimesBooked++
	return nil
}

// ReleaseLease clears the hold. Releasing an already clear room is a no-op;
// only the current holder may release an active hold.
func (r *Room) ReleaseLease(bookingID string) error {
	if r.HolderBookingID != "" && r.HolderBookingID != bookingID {
		return ErrRoomHeld
	}
	r.HolderBookingID = ""
	r.LeaseExpiry = nil
	return nil
}
