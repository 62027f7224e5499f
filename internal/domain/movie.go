package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	PosterUrl   string
	Genre       string
	Duration    int
	ReleaseDate time.Time
	Rating      string
	Active      bool
	CreatedAt   time.Time
}

type MovieFilters struct {
	Genre string
	Pagination
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Deactivate(ctx context.Context, id int) error
}
