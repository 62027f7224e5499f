package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"cinereserve/api"
	"cinereserve/internal/booking"
	"cinereserve/internal/domain"
	"cinereserve/internal/event"
	"cinereserve/internal/mailer"
	"cinereserve/internal/mocks"
	"cinereserve/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator:       validator.NewValidator(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager:  scs.New(),
		mailer:          mailer.NewMockMailer(),
		publisher:       event.NopPublisher{},
		userRepo:        &mocks.MockUserRepo{},
		movieRepo:       &mocks.MockMovieRepo{},
		theaterRepo:     &mocks.MockTheaterRepo{},
		seatRepo:        &mocks.MockSeatRepo{},
		showtimeRepo:    &mocks.MockShowtimeRepo{},
		reservationRepo: &mocks.MockReservationRepo{},
		reportRepo:      &mocks.MockReportRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	app.coordinator = booking.NewCoordinator(app.showtimeRepo, app.seatRepo, app.reservationRepo)

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// asUser stamps the request context the way requireAuthentication would.
func asUser(r *http.Request, userId int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKeyUserId, userId))
}

var farFuture = time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC)

func withRouteParam(r *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if wantErrMessage == "" {
			return
		}

		if validationResp.Message != wantErrMessage {
			errorSet := make(map[string]bool)
			for _, vErr := range validationResp.ValidationErrors {
				errorSet[vErr.Issue] = true
			}

			if !errorSet[wantErrMessage] {
				t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
			}
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func futureShowtime() *domain.Showtime {
	return &domain.Showtime{
		ID:          1,
		MovieID:     10,
		TheaterID:   5,
		MovieTitle:  "Arrival",
		TheaterName: "Grand Hall",
		StartTime:   farFuture,
		Price:       15,
		Active:      true,
	}
}

func ptr[T any](v T) *T {
	return &v
}
