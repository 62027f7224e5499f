// Package booking implements the transaction that turns a seat selection into
// a reservation, and its inverse. Two concurrent calls claiming the same seat
// for the same showtime can never both succeed: the ledger's active-claim
// uniqueness turns the race into an ordinary conflict error.
package booking

import (
	"context"
	"errors"
	"time"

	"cinereserve/internal/domain"
)

const DefaultTimeout = 5 * time.Second

type Coordinator struct {
	showtimes domain.ShowtimeRepository
	seats     domain.SeatRepository
	ledger    domain.ReservationRepository
	timeout   time.Duration
	now       func() time.Time
}

func NewCoordinator(
	showtimes domain.ShowtimeRepository,
	seats domain.SeatRepository,
	ledger domain.ReservationRepository) *Coordinator {

	return &Coordinator{
		showtimes: showtimes,
		seats:     seats,
		ledger:    ledger,
		timeout:   DefaultTimeout,
		now:       time.Now,
	}
}

// WithClock replaces the coordinator's clock. Used by tests.
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// Book validates the selection against the catalog, pre-checks the ledger,
// and commits the reservation as one atomic unit. On any error no reservation
// or claim is persisted for this call. Book is not idempotent on success:
// repeating a successful call creates a second reservation for free seats, so
// callers must not blindly retry success-ambiguous timeouts.
func (c *Coordinator) Book(ctx context.Context, userID, showtimeID int, seatIDs []int) (*domain.Reservation, error) {
	if err := validateSelection(seatIDs); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	showtime, err := c.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if !showtime.Active {
		return nil, domain.ErrRecordNotFound
	}

	if showtime.Started(c.now()) {
		return nil, domain.ErrShowtimeClosed
	}

	seats, err := c.seats.GetByTheaterAndIds(ctx, showtime.TheaterID, seatIDs)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if len(seats) != len(seatIDs) {
		return nil, &domain.InvalidSeatSelectionError{
			Reason: "one or more seats do not belong to the showtime's theater",
		}
	}

	taken, err := c.ledger.ActiveSeatHolders(ctx, showtimeID, seatIDs)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if len(taken) > 0 {
		return nil, &domain.SeatConflictError{SeatIDs: taken}
	}

	reference, err := domain.GenerateBookingReference()
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:           userID,
		ShowtimeID:       showtimeID,
		BookingReference: reference,
		TotalPrice:       showtime.Price * float64(len(seatIDs)),
		Status:           domain.ReservationConfirmed,
	}

	for _, seat := range seats {
		reservation.Seats = append(reservation.Seats, domain.ReservationSeat{
			ShowtimeID: showtimeID,
			SeatID:     seat.ID,
			Row:        seat.Row,
			Number:     seat.Number,
			Class:      seat.Class,
		})
	}

	err = c.ledger.Create(ctx, reservation)
	if err != nil {
		if errors.Is(err, domain.ErrSeatAlreadyReserved) {
			// Lost the race between the pre-check and the write. Re-query the
			// holders so the conflict response still names the taken seats.
			return nil, c.seatConflict(ctx, showtimeID, seatIDs)
		}

		return nil, mapStoreError(err)
	}

	return reservation, nil
}

// Cancel flips a reservation to cancelled, freeing its seats for future
// claims. Freeing a seat cannot conflict with anything, so no seat re-check
// is needed.
func (c *Coordinator) Cancel(ctx context.Context, reservationID, userID int, admin bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.ledger.Cancel(ctx, reservationID, userID, admin)
	if err != nil {
		return mapStoreError(err)
	}

	return nil
}

func validateSelection(seatIDs []int) error {
	if len(seatIDs) == 0 {
		return &domain.InvalidSeatSelectionError{Reason: "no seats selected"}
	}

	seen := make(map[int]bool, len(seatIDs))
	for _, id := range seatIDs {
		if id < 1 {
			return &domain.InvalidSeatSelectionError{Reason: "seat ids must be positive"}
		}
		if seen[id] {
			return &domain.InvalidSeatSelectionError{Reason: "duplicate seat ids in selection"}
		}
		seen[id] = true
	}

	return nil
}

func (c *Coordinator) seatConflict(ctx context.Context, showtimeID int, seatIDs []int) error {
	taken, err := c.ledger.ActiveSeatHolders(ctx, showtimeID, seatIDs)
	if err != nil || len(taken) == 0 {
		// Cannot name the exact seats anymore; report the whole selection so
		// the caller still refreshes availability.
		taken = seatIDs
	}

	return &domain.SeatConflictError{SeatIDs: taken}
}

// mapStoreError turns transaction timeouts into the retryable
// ErrStoreUnavailable instead of surfacing a raw context error.
func mapStoreError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStoreUnavailable
	}

	return err
}
