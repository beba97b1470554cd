package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	List(ctx context.Context) ([]domain.Hotel, error)
}

type PGHotelRepository struct {
	db *pgxpool.Pool
}

func NewHotelRepository(db *pgxpool.Pool) HotelRepository {
	return &PGHotelRepository{db: db}
}

func (r *PGHotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	now := time.Now()
	hotel.CreatedAt = now
	hotel.UpdatedAt = now
	return r.db.QueryRow(ctx, `
		INSERT INTO hotels (name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		hotel.Name, hotel.Address, hotel.CreatedAt, hotel.UpdatedAt).
		Scan(&hotel.ID)
}

func (r *PGHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, address, created_at, updated_at FROM hotels WHERE id=$1`, id)
	return scanHotel(row)
}

func (r *PGHotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, address, created_at, updated_at FROM hotels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

func scanHotel(row pgx.Row) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := row.Scan(&h.ID, &h.Name, &h.Address, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

var _ HotelRepository = (*PGHotelRepository)(nil)
