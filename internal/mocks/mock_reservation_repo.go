package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cinereserve/internal/domain"
)

type MockReservationRepo struct {
	mock.Mock
	domain.ReservationRepository
}

func (m *MockReservationRepo) ActiveSeatHolders(ctx context.Context, showtimeID int, seatIDs []int) ([]int, error) {
	args := m.Called(ctx, showtimeID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) Cancel(ctx context.Context, reservationID, userID int, admin bool) error {
	args := m.Called(ctx, reservationID, userID, admin)
	return args.Error(0)
}

func (m *MockReservationRepo) GetSummariesByUserId(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.ReservationSummary, *domain.Metadata, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.ReservationSummary), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockReservationRepo) GetByIdAndUserId(ctx context.Context, reservationID, userID int) (*domain.ReservationDetail, error) {
	args := m.Called(ctx, reservationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDetail), args.Error(1)
}
