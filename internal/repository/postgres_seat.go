package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinereserve/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) ListByTheater(ctx context.Context, theaterID int) ([]domain.Seat, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM theaters WHERE id = $1)`, theaterID).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrRecordNotFound
	}

	query := `
		SELECT id, theater_id, row_label, seat_number, seat_class
		FROM seats
		WHERE theater_id = $1
		ORDER BY row_label, seat_number
	`

	rows, err := p.db.Query(ctx, query, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

// AvailabilityByShowtime derives availability by joining the theater's layout
// against active claims. Nothing is cached; the result always matches what
// the booking transaction would see.
func (p *PostgresSeatRepository) AvailabilityByShowtime(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	query := `
		SELECT se.id, se.theater_id, se.row_label, se.seat_number, se.seat_class,
			rs.seat_id IS NULL AS available
		FROM showtimes sh
		JOIN seats se ON se.theater_id = sh.theater_id
		LEFT JOIN reservation_seats rs
			ON rs.seat_id = se.id
			AND rs.showtime_id = sh.id
			AND rs.active
		WHERE sh.id = $1
		ORDER BY se.row_label, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.ShowtimeSeat, 0)

	for rows.Next() {
		var seat domain.ShowtimeSeat

		err = rows.Scan(
			&seat.ID,
			&seat.TheaterID,
			&seat.Row,
			&seat.Number,
			&seat.Class,
			&seat.Available,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return seats, nil
}

func (p *PostgresSeatRepository) GetByTheaterAndIds(
	ctx context.Context,
	theaterID int,
	seatIDs []int) ([]domain.Seat, error) {

	query := `
		SELECT id, theater_id, row_label, seat_number, seat_class
		FROM seats
		WHERE theater_id = $1 AND id = ANY($2)
		ORDER BY row_label, seat_number
	`

	rows, err := p.db.Query(ctx, query, theaterID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

func scanSeats(rows pgx.Rows) ([]domain.Seat, error) {
	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(
			&seat.ID,
			&seat.TheaterID,
			&seat.Row,
			&seat.Number,
			&seat.Class,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
