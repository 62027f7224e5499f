package domain

import (
	"context"
	"crypto/rand"
	"time"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

const (
	bookingReferenceLength  = 10
	bookingReferenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Reservation struct {
	ID               int
	UserID           int
	ShowtimeID       int
	BookingReference string
	TotalPrice       float64
	Status           ReservationStatus
	Seats            []ReservationSeat
	CreatedAt        time.Time
	CancelledAt      *time.Time
}

// ReservationSeat records that a seat, for a showtime, is claimed by a
// reservation. The triple never changes once written; cancellation is
// expressed through the owning reservation's status.
type ReservationSeat struct {
	ReservationID int
	ShowtimeID    int
	SeatID        int
	Row           string
	Number        int
	Class         SeatClass
}

type ReservationSummary struct {
	ReservationID    int
	BookingReference string
	MovieTitle       string
	TheaterName      string
	ShowtimeStart    time.Time
	TotalPrice       float64
	Status           ReservationStatus
	CreatedAt        time.Time
}

type ReservationDetail struct {
	ReservationSummary
	ShowtimeID int
	Seats      []ReservationSeat
}

// GenerateBookingReference returns a fixed-length uppercase alphanumeric
// reference drawn from crypto/rand. Uniqueness is still enforced by the
// ledger; callers regenerate on the (vanishingly rare) collision.
func GenerateBookingReference() (string, error) {
	buf := make([]byte, bookingReferenceLength)
	_, err := rand.Read(buf)
	if err != nil {
		return "", err
	}

	for i, b := range buf {
		buf[i] = bookingReferenceCharset[int(b)%len(bookingReferenceCharset)]
	}

	return string(buf), nil
}

// ReservationRepository is the ledger: the single source of truth for seat
// occupancy. Create and Cancel each run as one atomic transaction.
type ReservationRepository interface {
	// ActiveSeatHolders returns the subset of seatIDs that already carry an
	// active claim for the showtime.
	ActiveSeatHolders(ctx context.Context, showtimeID int, seatIDs []int) ([]int, error)

	// Create persists the reservation and one claim per seat as a single
	// durable unit. A concurrent writer claiming any of the same seats makes
	// the whole transaction fail with ErrSeatAlreadyReserved; no partial
	// reservation is ever visible.
	Create(ctx context.Context, reservation *Reservation) error

	// Cancel flips the reservation to cancelled and releases its claims.
	// Fails with ErrNotReservationOwner unless the requesting user owns the
	// reservation or admin is set, and with ErrReservationNotCancellable when
	// the reservation is already cancelled or the showtime has started.
	Cancel(ctx context.Context, reservationID, userID int, admin bool) error

	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]ReservationSummary, *Metadata, error)
	GetByIdAndUserId(ctx context.Context, reservationID, userID int) (*ReservationDetail, error)
}
