package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cinereserve/internal/domain"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) ListByTheater(ctx context.Context, theaterID int) ([]domain.Seat, error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) AvailabilityByShowtime(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowtimeSeat), args.Error(1)
}

func (m *MockSeatRepo) GetByTheaterAndIds(ctx context.Context, theaterID int, seatIDs []int) ([]domain.Seat, error) {
	args := m.Called(ctx, theaterID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}
