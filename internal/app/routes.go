package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinereserve", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/auth/register", app.RegisterUser)
	r.Post("/auth/login", app.Login)
	r.Post("/auth/logout", app.Logout)

	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{movieId}", app.GetMovieById)

	r.Get("/theaters", app.GetTheaters)
	r.Get("/theaters/{theaterId}", app.GetTheaterById)
	r.Get("/theaters/{theaterId}/seats", app.GetTheaterSeats)

	r.Get("/showtimes", app.GetShowtimes)
	r.Get("/showtimes/{showtimeId}", app.GetShowtimeById)
	r.Get("/showtimes/{showtimeId}/seats", app.GetSeatMapByShowtime)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUser)

		r.Post("/reservations", app.CreateReservation)
		r.Delete("/reservations/{reservationId}", app.CancelReservation)

		r.Get("/users/me/reservations", app.GetUserReservations)
		r.Get("/users/me/reservations/{reservationId}", app.GetUserReservationById)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication, app.requireAdmin)

		r.Post("/movies", app.CreateMovie)
		r.Patch("/movies/{movieId}", app.UpdateMovie)
		r.Delete("/movies/{movieId}", app.DeactivateMovie)

		r.Post("/showtimes", app.CreateShowtime)

		r.Get("/admin/reports/showtimes", app.GetShowtimeReports)
		r.Get("/admin/reports/summary", app.GetSummaryReport)
	})

	return r
}
