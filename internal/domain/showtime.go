package domain

import (
	"context"
	"time"
)

// Showtime is catalog data: the coordinator and the read path treat it as
// read-only input. Price is flat per seat; the total captured on a
// reservation is immutable, so later price edits never rewrite history.
type Showtime struct {
	ID          int
	MovieID     int
	TheaterID   int
	MovieTitle  string
	TheaterName string
	StartTime   time.Time
	Price       float64
	Active      bool

	// AvailableSeats is derived from the ledger at query time; it is never
	// stored as an independent counter.
	AvailableSeats int
}

func (s Showtime) Started(now time.Time) bool {
	return !s.StartTime.After(now)
}

type ShowtimeFilters struct {
	MovieID int
	Date    *time.Time
}

type ShowtimeRepository interface {
	GetAll(ctx context.Context, filters ShowtimeFilters) ([]Showtime, error)
	GetById(ctx context.Context, id int) (*Showtime, error)
	Create(ctx context.Context, showtime *Showtime) error
}
