package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cinereserve/api"
	"cinereserve/internal/domain"
	"cinereserve/internal/mocks"
)

func sampleMovie() *domain.Movie {
	return &domain.Movie{
		ID:          10,
		Title:       "Arrival",
		Description: "A linguist decodes an alien language.",
		Genre:       "sci-fi",
		Duration:    116,
		ReleaseDate: time.Date(2016, 11, 11, 0, 0, 0, 0, time.UTC),
		Rating:      "PG-13",
		Active:      true,
	}
}

func TestGetMovies(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMocks func(app *Application)
		wantStatus int
	}{
		{
			name:       "invalid page",
			url:        "/movies?page=0",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "page size over limit",
			url:        "/movies?pageSize=500",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "genre filter is passed through",
			url:  "/movies?genre=sci-fi",
			setupMocks: func(app *Application) {
				filters := domain.MovieFilters{
					Genre:      "sci-fi",
					Pagination: domain.Pagination{Page: 1, PageSize: 10},
				}

				app.movieRepo.(*mocks.MockMovieRepo).
					On("GetAll", mock.Anything, filters).
					Return([]*domain.Movie{sampleMovie()}, domain.NewMetadata(1, 1, 10), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			if tt.setupMocks != nil {
				tt.setupMocks(app)
			}

			w, r := executeRequest(t, http.MethodGet, tt.url, nil)

			app.GetMovies(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetMovieById(t *testing.T) {
	app := newTestApplication()

	app.movieRepo.(*mocks.MockMovieRepo).
		On("GetById", mock.Anything, 10).Return(sampleMovie(), nil)

	w, r := executeRequest(t, http.MethodGet, "/movies/10", nil)
	r = withRouteParam(r, "movieId", "10")

	app.GetMovieById(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.MovieResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Arrival", resp.Title)
	assert.Equal(t, "2016-11-11", resp.ReleaseDate.Format("2006-01-02"))
}

func TestCreateMovie(t *testing.T) {
	tests := []struct {
		name       string
		body       api.CreateMovieRequest
		setupMocks func(app *Application)
		wantStatus int
	}{
		{
			name:       "missing title",
			body:       api.CreateMovieRequest{Genre: "drama", Duration: 90, ReleaseDate: api.NewDate(farFuture)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "success",
			body: api.CreateMovieRequest{
				Title:       "Dune",
				Genre:       "sci-fi",
				Duration:    155,
				ReleaseDate: api.NewDate(farFuture),
			},
			setupMocks: func(app *Application) {
				app.movieRepo.(*mocks.MockMovieRepo).
					On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			if tt.setupMocks != nil {
				tt.setupMocks(app)
			}

			w, r := executeRequest(t, http.MethodPost, "/movies", tt.body)

			app.CreateMovie(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUpdateMovie_PartialPatch(t *testing.T) {
	app := newTestApplication()

	movieRepo := app.movieRepo.(*mocks.MockMovieRepo)
	movieRepo.On("GetById", mock.Anything, 10).Return(sampleMovie(), nil)
	movieRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *domain.Movie) bool {
		return m.Title == "Arrival (Director's Cut)" && m.Genre == "sci-fi"
	})).Return(nil)

	w, r := executeRequest(t, http.MethodPatch, "/movies/10", api.UpdateMovieRequest{
		Title: ptr("Arrival (Director's Cut)"),
	})
	r = withRouteParam(r, "movieId", "10")

	app.UpdateMovie(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	movieRepo.AssertExpectations(t)
}

func TestDeactivateMovie(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{name: "unknown movie", repoErr: domain.ErrRecordNotFound, wantStatus: http.StatusNotFound},
		{name: "success", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			app.movieRepo.(*mocks.MockMovieRepo).
				On("Deactivate", mock.Anything, 10).Return(tt.repoErr)

			w, r := executeRequest(t, http.MethodDelete, "/movies/10", nil)
			r = withRouteParam(r, "movieId", "10")

			app.DeactivateMovie(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
