package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cinereserve/api"
	"cinereserve/internal/domain"
)

func (app *Application) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	filters := domain.ShowtimeFilters{
		MovieID: readQueryInt(r, "movieId", 0),
	}

	if date := r.URL.Query().Get("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid date parameter, expected YYYY-MM-DD"))
			return
		}
		filters.Date = &day
	}

	showtimes, err := app.showtimeRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		resp[i] = toShowtimeResponse(showtime)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimeById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(*showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	price, _ := input.Price.Float64()
	if price <= 0 {
		app.badRequestResponse(w, r, errors.New("price must be greater than zero"))
		return
	}

	if input.StartTime.Before(time.Now()) {
		app.badRequestResponse(w, r, errors.New("start time must be in the future"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieId)
	if err != nil || !movie.Active {
		app.badRequestResponse(w, r, errors.New("movie does not exist"))
		return
	}

	theater, err := app.theaterRepo.GetById(r.Context(), input.TheaterId)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("theater does not exist"))
		return
	}

	showtime := domain.Showtime{
		MovieID:        movie.ID,
		TheaterID:      theater.ID,
		MovieTitle:     movie.Title,
		TheaterName:    theater.Name,
		StartTime:      input.StartTime,
		Price:          price,
		Active:         true,
		AvailableSeats: theater.SeatCount,
	}

	err = app.showtimeRepo.Create(r.Context(), &showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateShowtime):
			logger.Warn("duplicate showtime slot", "theaterId", theater.ID, "startTime", input.StartTime)
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowtimeResponse(showtime domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:             showtime.ID,
		MovieId:        showtime.MovieID,
		TheaterId:      showtime.TheaterID,
		MovieTitle:     showtime.MovieTitle,
		TheaterName:    showtime.TheaterName,
		StartTime:      showtime.StartTime,
		Price:          decimal.NewFromFloat(showtime.Price),
		AvailableSeats: showtime.AvailableSeats,
	}
}
