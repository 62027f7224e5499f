package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cinereserve/internal/domain"
)

type MockReportRepo struct {
	mock.Mock
	domain.ReportRepository
}

func (m *MockReportRepo) ShowtimeReports(ctx context.Context, filters domain.ReportFilters) ([]domain.ShowtimeReport, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowtimeReport), args.Error(1)
}

func (m *MockReportRepo) Summary(ctx context.Context) (*domain.SummaryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryReport), args.Error(1)
}
