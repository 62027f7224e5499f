package domain

import (
	"context"
	"strconv"
)

type SeatClass string

const (
	SeatClassStandard SeatClass = "standard"
	SeatClassPremium  SeatClass = "premium"
	SeatClassVip      SeatClass = "vip"
)

// Seat is part of a theater's static layout. Availability is never stored on
// the seat; it is derived from the reservation ledger per showtime.
type Seat struct {
	ID        int
	TheaterID int
	Row       string
	Number    int
	Class     SeatClass
}

func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}

// ShowtimeSeat pairs a seat with its derived availability for one showtime.
type ShowtimeSeat struct {
	Seat
	Available bool
}

type SeatRepository interface {
	// ListByTheater returns the theater's layout ordered by row label and
	// seat number. Returns ErrRecordNotFound when the theater does not exist.
	ListByTheater(ctx context.Context, theaterID int) ([]Seat, error)

	// AvailabilityByShowtime computes, fresh on every call, the availability
	// of each seat in the showtime's theater: a seat is available iff no
	// active claim references it for this showtime.
	AvailabilityByShowtime(ctx context.Context, showtimeID int) ([]ShowtimeSeat, error)

	// GetByTheaterAndIds returns only the requested seats that belong to the
	// given theater. Missing ids are simply absent from the result.
	GetByTheaterAndIds(ctx context.Context, theaterID int, seatIDs []int) ([]Seat, error)
}
