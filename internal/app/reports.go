package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cinereserve/api"
	"cinereserve/internal/domain"
)

func (app *Application) GetShowtimeReports(w http.ResponseWriter, r *http.Request) {
	var filters domain.ReportFilters

	if from := r.URL.Query().Get("from"); from != "" {
		day, err := time.Parse("2006-01-02", from)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid from parameter, expected YYYY-MM-DD"))
			return
		}
		filters.From = &day
	}

	if to := r.URL.Query().Get("to"); to != "" {
		day, err := time.Parse("2006-01-02", to)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid to parameter, expected YYYY-MM-DD"))
			return
		}
		filters.To = &day
	}

	reports, err := app.reportRepo.ShowtimeReports(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeReportsResponse{
		Reports: make([]api.ShowtimeReport, len(reports)),
	}

	for i, report := range reports {
		resp.Reports[i] = api.ShowtimeReport{
			ShowtimeId:        report.ShowtimeID,
			MovieTitle:        report.MovieTitle,
			TheaterName:       report.TheaterName,
			StartTime:         report.StartTime,
			TotalReservations: report.TotalReservations,
			SeatsBooked:       report.SeatsBooked,
			SeatsAvailable:    report.SeatsAvailable,
			TotalRevenue:      decimal.NewFromFloat(report.TotalRevenue),
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	summary, err := app.reportRepo.Summary(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SummaryReportResponse{
		TotalReservations: summary.TotalReservations,
		TotalRevenue:      decimal.NewFromFloat(summary.TotalRevenue),
		TotalCustomers:    summary.TotalCustomers,
		TotalSeatsBooked:  summary.TotalSeatsBooked,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
