package repository

import (
	"context"
	"errors"
	"time"

	"hotelbooking/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrOverlap is returned by ReserveIfFree when an active booking already
// covers part of the requested date range.
var ErrOverlap = errors.New("room is already booked for given dates")

const uniqueViolation = "23505"

type BookingRepository interface {
	ReserveIfFree(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, page, size int) ([]domain.Booking, error)
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error)
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, hotel_id, room_id, start_date, end_date, status, COALESCE(idempotency_key, ''), created_at, updated_at`

// ReserveIfFree inserts a PENDING row for the range iff no PENDING or
// CONFIRMED booking overlaps it. The transaction takes a per-room advisory
// lock before the overlap check, so competing inserts for the same room
// serialize and the loser observes the winner's row. The lock is released
// by commit or rollback.
func (r *PGBookingRepository) ReserveIfFree(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, booking.RoomID); err != nil {
		return err
	}

	var existing int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM bookings
		WHERE room_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_date < $2
		  AND end_date > $3
		LIMIT 1`, booking.RoomID, booking.EndDate, booking.StartDate).Scan(&existing)
	if err == nil {
		return ErrOverlap
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	now := time.Now()
	booking.Status = domain.BookingStatusPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, hotel_id, room_id, start_date, end_date, status, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		RETURNING id`,
		booking.UserID, booking.HotelID, booking.RoomID, booking.StartDate, booking.EndDate,
		booking.Status, booking.IdempotencyKey, booking.CreatedAt, booking.UpdatedAt).
		Scan(&booking.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Concurrent replay of the same idempotency key: resolve to the
			// row that won the insert.
			if existing, findErr := r.findByIdempotencyKey(ctx, r.db, booking.UserID, booking.IdempotencyKey); findErr == nil && existing != nil {
				*booking = *existing
				return nil
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=$2 WHERE id=$3 RETURNING `+bookingColumns,
		status, time.Now(), id)
	return scanBooking(row)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3`, userID, size, page*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error) {
	return r.findByIdempotencyKey(ctx, r.db, userID, key)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PGBookingRepository) findByIdempotencyKey(ctx context.Context, q queryRower, userID int64, key string) (*domain.Booking, error) {
	row := q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 AND idempotency_key=$2`, userID, key)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *PGBookingRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND start_date < $2
			  AND end_date > $3
		)`, roomID, end, start).Scan(&exists)
	return exists, err
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.StartDate, &b.EndDate, &b.Status, &b.IdempotencyKey, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
