package domain

import "context"

type Theater struct {
	ID        int
	Name      string
	SeatCount int
}

type TheaterRepository interface {
	GetAll(ctx context.Context) ([]Theater, error)
	GetById(ctx context.Context, id int) (*Theater, error)
}
