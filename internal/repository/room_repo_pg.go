package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListAvailable(ctx context.Context) ([]domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	ListRecommended(ctx context.Context) ([]domain.Room, error)
	Transition(ctx context.Context, roomID int64, fn func(room *domain.Room) error) (*domain.Room, error)
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

const roomColumns = `id, hotel_id, number, available, times_booked, COALESCE(holder_booking_id, ''), lease_expiry, created_at, updated_at`

func (r *PGRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	return r.db.QueryRow(ctx, `
		INSERT INTO rooms (hotel_id, number, available, times_booked, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING id`,
		room.HotelID, room.Number, room.Available, room.CreatedAt, room.UpdatedAt).
		Scan(&room.ID)
}

func (r *PGRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1`, id)
	return scanRoom(row)
}

func (r *PGRoomRepository) ListAvailable(ctx context.Context) ([]domain.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE available ORDER BY id`)
}

func (r *PGRoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE hotel_id=$1 ORDER BY id`, hotelID)
}

func (r *PGRoomRepository) ListRecommended(ctx context.Context) ([]domain.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE available ORDER BY times_booked, id`)
}

// Transition loads the room under a row lock, applies fn and persists the
// lease fields in one transaction, so concurrent confirm/release calls for
// the same room serialize.
func (r *PGRoomRepository) Transition(ctx context.Context, roomID int64, fn func(room *domain.Room) error) (*domain.Room, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1 FOR UPDATE`, roomID)
	room, err := scanRoom(row)
	if err != nil {
		return nil, err
	}

	if err := fn(room); err != nil {
		return nil, err
	}

	room.UpdatedAt = time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE rooms
		SET holder_booking_id = NULLIF($1, ''), lease_expiry = $2, times_booked = $3, updated_at = $4
		WHERE id = $5`,
		room.HolderBookingID, room.LeaseExpiry, room.TimesBooked, room.UpdatedAt, room.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return room, nil
}

func (r *PGRoomRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var room domain.Room
	if err := row.Scan(&room.ID, &room.HotelID, &room.Number, &room.Available, &room.TimesBooked, &room.HolderBookingID, &room.LeaseExpiry, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return nil, err
	}
	return &room, nil
}

var _ RoomRepository = (*PGRoomRepository)(nil)
