package domain

import (
	"context"
	"time"
)

// Reporting reads confirmed/cancelled history only; the claim rows are kept
// after cancellation precisely so these aggregates stay auditable.

type ShowtimeReport struct {
	ShowtimeID        int
	MovieTitle        string
	TheaterName       string
	StartTime         time.Time
	TotalReservations int
	SeatsBooked       int
	SeatsAvailable    int
	TotalRevenue      float64
}

type SummaryReport struct {
	TotalReservations int
	TotalRevenue      float64
	TotalCustomers    int
	TotalSeatsBooked  int
}

type ReportFilters struct {
	From *time.Time
	To   *time.Time
}

type ReportRepository interface {
	ShowtimeReports(ctx context.Context, filters ReportFilters) ([]ShowtimeReport, error)
	Summary(ctx context.Context) (*SummaryReport, error)
}
