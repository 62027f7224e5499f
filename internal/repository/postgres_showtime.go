package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinereserve/internal/domain"
)

const showtimeSlotConstraint = "showtimes_theater_start_key"

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

// GetAll lists active showtimes with a remaining-seat count derived from the
// ledger, so listings can never drift from what booking would see.
func (p *PostgresShowtimeRepository) GetAll(
	ctx context.Context,
	filters domain.ShowtimeFilters) ([]domain.Showtime, error) {

	query := `
		SELECT
			sh.id,
			sh.movie_id,
			sh.theater_id,
			m.title,
			t.name,
			sh.start_time,
			sh.price,
			sh.active,
			t.seat_count - COUNT(rs.id) FILTER (WHERE rs.active) AS available_seats
		FROM showtimes sh
		JOIN movies m ON sh.movie_id = m.id
		JOIN theaters t ON sh.theater_id = t.id
		LEFT JOIN reservation_seats rs ON rs.showtime_id = sh.id
		WHERE sh.active
			AND ($1 = 0 OR sh.movie_id = $1)
			AND ($2::date IS NULL OR sh.start_time::date = $2)
		GROUP BY sh.id, sh.movie_id, sh.theater_id, m.title, t.name, sh.start_time, sh.price, sh.active, t.seat_count
		ORDER BY sh.start_time
	`

	rows, err := p.db.Query(ctx, query, filters.MovieID, filters.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.TheaterID,
			&showtime.MovieTitle,
			&showtime.TheaterName,
			&showtime.StartTime,
			&showtime.Price,
			&showtime.Active,
			&showtime.AvailableSeats,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT sh.id, sh.movie_id, sh.theater_id, m.title, t.name, sh.start_time, sh.price, sh.active
		FROM showtimes sh
		JOIN movies m ON sh.movie_id = m.id
		JOIN theaters t ON sh.theater_id = t.id
		WHERE sh.id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.MovieTitle,
		&showtime.TheaterName,
		&showtime.StartTime,
		&showtime.Price,
		&showtime.Active,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater_id, start_time, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, active
	`

	err := p.db.QueryRow(
		ctx,
		query,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.StartTime,
		showtime.Price).Scan(&showtime.ID, &showtime.Active)

	if err != nil {
		if isUniqueViolation(err, showtimeSlotConstraint) {
			return domain.ErrDuplicateShowtime
		}

		return err
	}

	return nil
}
