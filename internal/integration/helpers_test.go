package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cinereserve/internal/domain"
)

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt" || k == "bookingReference" || k == "id"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// login authenticates against the running routes and returns the session
// cookie to attach to subsequent requests.
func login(t testing.TB, testApp *TestApp, email, password string) *http.Cookie {
	body := jsonBody(t, map[string]string{"email": email, "password": password})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code, "login failed: %s", rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}

	t.Fatal("no session cookie returned from login")
	return nil
}

func seedUser(t testing.TB, testApp *TestApp, email, password string, role domain.Role) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	require.NoError(t, err)

	var id int
	err = testApp.DB.QueryRow(context.Background(),
		`INSERT INTO users (email, full_name, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		email, "Test User", hash, string(role)).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedMovie(t testing.TB, testApp *TestApp, title string) int {
	var id int
	err := testApp.DB.QueryRow(context.Background(),
		`INSERT INTO movies (title, description, genre, duration_minutes, release_date)
		 VALUES ($1, 'seeded', 'drama', 120, '2020-01-01') RETURNING id`,
		title).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedTheater creates a theater with a 2x3 seat grid and returns the theater
// id along with the seat ids in row/number order.
func seedTheater(t testing.TB, testApp *TestApp, name string) (int, []int) {
	ctx := context.Background()

	var theaterId int
	err := testApp.DB.QueryRow(ctx,
		`INSERT INTO theaters (name, seat_count) VALUES ($1, 6) RETURNING id`, name).Scan(&theaterId)
	require.NoError(t, err)

	var seatIds []int
	for _, row := range []string{"A", "B"} {
		for number := 1; number <= 3; number++ {
			var seatId int
			err := testApp.DB.QueryRow(ctx,
				`INSERT INTO seats (theater_id, row_label, seat_number, seat_class) VALUES ($1, $2, $3, 'standard') RETURNING id`,
				theaterId, row, number).Scan(&seatId)
			require.NoError(t, err)
			seatIds = append(seatIds, seatId)
		}
	}

	return theaterId, seatIds
}

func seedShowtime(t testing.TB, testApp *TestApp, movieId, theaterId int, startTime time.Time, price float64) int {
	var id int
	err := testApp.DB.QueryRow(context.Background(),
		`INSERT INTO showtimes (movie_id, theater_id, start_time, price) VALUES ($1, $2, $3, $4) RETURNING id`,
		movieId, theaterId, startTime, price).Scan(&id)
	require.NoError(t, err)

	return id
}

func countActiveClaims(t testing.TB, testApp *TestApp, showtimeId int) int {
	var count int
	err := testApp.DB.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM reservation_seats WHERE showtime_id = $1 AND active`, showtimeId).Scan(&count)
	require.NoError(t, err)

	return count
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
