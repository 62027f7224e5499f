package app

import (
	"errors"
	"net/http"

	"cinereserve/api"
	"cinereserve/internal/domain"
)

func (app *Application) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := app.theaterRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.TheaterResponse, len(theaters))
	for i, theater := range theaters {
		resp[i] = toTheaterResponse(theater)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTheaterById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theater, err := app.theaterRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheaterResponse(*theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetTheaterSeats returns the static layout of a theater, without
// availability. Availability only exists relative to a showtime.
func (app *Application) GetTheaterSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.seatRepo.ListByTheater(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtimeSeats := make([]domain.ShowtimeSeat, len(seats))
	for i, seat := range seats {
		showtimeSeats[i] = domain.ShowtimeSeat{Seat: seat, Available: true}
	}

	resp := api.TheaterSeatsResponse{
		TheaterId: id,
		SeatRows:  toSeatRows(showtimeSeats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTheaterResponse(theater domain.Theater) api.TheaterResponse {
	return api.TheaterResponse{
		Id:        theater.ID,
		Name:      theater.Name,
		SeatCount: theater.SeatCount,
	}
}
