package app

import (
	"errors"
	"net/http"

	"cinereserve/api"
	"cinereserve/internal/domain"
)

// GetSeatMapByShowtime returns every seat of the showtime's theater with its
// availability computed from the reservation ledger at request time. The
// result is never cached; two bookings apart, the same request reflects both.
func (app *Application) GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.seatRepo.AvailabilityByShowtime(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatMapResponse{
		ShowtimeId: id,
		SeatRows:   toSeatRows(seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatRows(seats []domain.ShowtimeSeat) []api.SeatRow {
	// Seats are pre-sorted by row and number, so rows can be assembled in a
	// single pass.

	if len(seats) == 0 {
		return nil
	}

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:        v.ID,
			Row:       v.Row,
			Number:    v.Number,
			Class:     string(v.Class),
			Available: v.Available,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
