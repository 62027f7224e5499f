package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cinereserve/internal/domain"
)

const (
	activeClaimConstraint = "reservation_seats_active_claim_idx"
	bookingRefConstraint  = "reservations_booking_reference_key"

	// Retries for the whole transaction when the generated booking reference
	// collides. Each retry draws a fresh reference.
	maxBookingRefAttempts = 3
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

func (p *PostgresReservationRepository) ActiveSeatHolders(
	ctx context.Context,
	showtimeID int,
	seatIDs []int) ([]int, error) {

	query := `
		SELECT seat_id
		FROM reservation_seats
		WHERE showtime_id = $1 AND seat_id = ANY($2) AND active
	`

	rows, err := p.db.Query(ctx, query, showtimeID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make([]int, 0)

	for rows.Next() {
		var seatID int

		if err = rows.Scan(&seatID); err != nil {
			return nil, err
		}

		taken = append(taken, seatID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return taken, nil
}

// Create writes the reservation and its seat claims in one transaction. The
// partial unique index on (showtime_id, seat_id) over active claims is what
// closes the race between the coordinator's pre-check and this write: the
// second concurrent writer fails with a unique violation, surfaced as
// domain.ErrSeatAlreadyReserved, and nothing is persisted for that call.
func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	for attempt := 0; ; attempt++ {
		err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
			return p.insertReservation(ctx, tx, reservation)
		})

		switch {
		case err == nil:
			return nil
		case isUniqueViolation(err, activeClaimConstraint):
			return domain.ErrSeatAlreadyReserved
		case isUniqueViolation(err, bookingRefConstraint) && attempt < maxBookingRefAttempts:
			reference, genErr := domain.GenerateBookingReference()
			if genErr != nil {
				return genErr
			}
			reservation.BookingReference = reference
		default:
			return err
		}
	}
}

func (p *PostgresReservationRepository) insertReservation(
	ctx context.Context,
	tx pgx.Tx,
	reservation *domain.Reservation) error {

	query := `
		INSERT INTO reservations (user_id, showtime_id, booking_reference, total_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := tx.QueryRow(
		ctx,
		query,
		reservation.UserID,
		reservation.ShowtimeID,
		reservation.BookingReference,
		reservation.TotalPrice,
		reservation.Status).Scan(&reservation.ID, &reservation.CreatedAt)

	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(reservation.Seats))
	for i := range reservation.Seats {
		reservation.Seats[i].ReservationID = reservation.ID

		rows = append(rows, []any{
			reservation.ID,
			reservation.ShowtimeID,
			reservation.Seats[i].SeatID,
		})
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"reservation_seats"},
		[]string{"reservation_id", "showtime_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)

	return err
}

// Cancel validates ownership and timing under a row lock, then flips the
// reservation and releases its claims in the same transaction. The claim rows
// themselves are kept for reporting; only their active flag drops.
func (p *PostgresReservationRepository) Cancel(ctx context.Context, reservationID, userID int, admin bool) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT r.user_id, r.status, s.start_time <= now()
			FROM reservations r
			JOIN showtimes s ON r.showtime_id = s.id
			WHERE r.id = $1
			FOR UPDATE OF r
		`

		var (
			ownerID int
			status  domain.ReservationStatus
			started bool
		)

		err := tx.QueryRow(ctx, query, reservationID).Scan(&ownerID, &status, &started)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if ownerID != userID && !admin {
			return domain.ErrNotReservationOwner
		}

		if status != domain.ReservationConfirmed || started {
			return domain.ErrReservationNotCancellable
		}

		_, err = tx.Exec(ctx, `
			UPDATE reservations
			SET status = 'cancelled', cancelled_at = now()
			WHERE id = $1
		`, reservationID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE reservation_seats
			SET active = false
			WHERE reservation_id = $1
		`, reservationID)

		return err
	})
}

func (p *PostgresReservationRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.ReservationSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			r.id,
			r.booking_reference,
			m.title,
			t.name,
			s.start_time,
			r.total_price,
			r.status,
			r.created_at
		FROM reservations r
		JOIN showtimes s ON r.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN theaters t ON s.theater_id = t.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.ReservationSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.ReservationSummary

		err = rows.Scan(
			&totalRecords,
			&summary.ReservationID,
			&summary.BookingReference,
			&summary.MovieTitle,
			&summary.TheaterName,
			&summary.ShowtimeStart,
			&summary.TotalPrice,
			&summary.Status,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresReservationRepository) GetByIdAndUserId(
	ctx context.Context,
	reservationID,
	userID int) (*domain.ReservationDetail, error) {

	query := `
		SELECT
			r.id,
			r.showtime_id,
			r.booking_reference,
			m.title,
			t.name,
			s.start_time,
			r.total_price,
			r.status,
			r.created_at
		FROM reservations r
		JOIN showtimes s ON r.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN theaters t ON s.theater_id = t.id
		WHERE r.id = $1 AND r.user_id = $2
	`

	var detail domain.ReservationDetail

	err := p.db.QueryRow(ctx, query, reservationID, userID).Scan(
		&detail.ReservationID,
		&detail.ShowtimeID,
		&detail.BookingReference,
		&detail.MovieTitle,
		&detail.TheaterName,
		&detail.ShowtimeStart,
		&detail.TotalPrice,
		&detail.Status,
		&detail.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveReservationSeats(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	detail.Seats = seats

	return &detail, nil
}

func (p *PostgresReservationRepository) retrieveReservationSeats(
	ctx context.Context,
	reservationID int) ([]domain.ReservationSeat, error) {

	query := `
		SELECT rs.reservation_id, rs.showtime_id, rs.seat_id, se.row_label, se.seat_number, se.seat_class
		FROM reservation_seats rs
		JOIN seats se ON rs.seat_id = se.id
		WHERE rs.reservation_id = $1
		ORDER BY se.row_label, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.ReservationSeat, 0)

	for rows.Next() {
		var seat domain.ReservationSeat

		err = rows.Scan(
			&seat.ReservationID,
			&seat.ShowtimeID,
			&seat.SeatID,
			&seat.Row,
			&seat.Number,
			&seat.Class,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
