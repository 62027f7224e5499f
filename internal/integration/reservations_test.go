package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cinereserve/api"
	"cinereserve/internal/domain"
)

type ReservationsSuite struct {
	BaseSuite
}

func TestReservationsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(ReservationsSuite))
}

func (s *ReservationsSuite) bookViaAPI(cookie *http.Cookie, showtimeId int, seatIds []int) *httptest.ResponseRecorder {
	body := jsonBody(s.T(), api.CreateReservationRequest{ShowtimeId: showtimeId, SeatIds: seatIds})

	req := httptest.NewRequest(http.MethodPost, "/reservations", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func (s *ReservationsSuite) TestBookingLifecycle() {
	t := s.T()

	password := "Str0ng!Pass"
	seedUser(t, s.app, uniqueEmail("owner"), password, domain.RoleUser)
	ownerEmail := uniqueEmail("lifecycle")
	seedUser(t, s.app, ownerEmail, password, domain.RoleUser)

	movieId := seedMovie(t, s.app, "Lifecycle Feature")
	theaterId, seatIds := seedTheater(t, s.app, "Lifecycle Hall")
	showtimeId := seedShowtime(t, s.app, movieId, theaterId, time.Now().Add(48*time.Hour), 10)

	cookie := login(t, s.app, ownerEmail, password)

	// Book two seats.
	rec := s.bookViaAPI(cookie, showtimeId, seatIds[:2])
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created api.ReservationResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&created))
	s.Equal("confirmed", created.Status)
	s.Len(created.BookingReference, 10)
	s.Equal("20", created.TotalPrice.String())
	s.Equal(2, countActiveClaims(t, s.app, showtimeId))

	// The seat map reflects the claims.
	req := httptest.NewRequest(http.MethodGet, "/showtimes/"+itoa(showtimeId)+"/seats", nil)
	seatRec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(seatRec, req)
	s.Require().Equal(http.StatusOK, seatRec.Code)

	var seatMap api.SeatMapResponse
	s.Require().NoError(json.NewDecoder(seatRec.Body).Decode(&seatMap))

	unavailable := 0
	for _, row := range seatMap.SeatRows {
		for _, seat := range row.Seats {
			if !seat.Available {
				unavailable++
			}
		}
	}
	s.Equal(2, unavailable)

	// A second attempt on the same seats names them in the conflict.
	rec = s.bookViaAPI(cookie, showtimeId, seatIds[1:3])
	s.Require().Equal(http.StatusConflict, rec.Code)

	var conflict api.SeatConflictResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&conflict))
	s.Equal([]int{seatIds[1]}, conflict.ConflictSeatIds)

	// Cancel releases the claims but keeps the rows for auditing.
	cancelReq := httptest.NewRequest(http.MethodDelete, "/reservations/"+itoa(created.Id), nil)
	cancelReq.AddCookie(cookie)
	cancelRec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(cancelRec, cancelReq)
	s.Require().Equal(http.StatusNoContent, cancelRec.Code)

	s.Equal(0, countActiveClaims(t, s.app, showtimeId))

	var totalRows int
	err := s.app.DB.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM reservation_seats WHERE showtime_id = $1`, showtimeId).Scan(&totalRows)
	s.Require().NoError(err)
	s.Equal(2, totalRows)

	// Cancelling twice is rejected.
	cancelReq = httptest.NewRequest(http.MethodDelete, "/reservations/"+itoa(created.Id), nil)
	cancelReq.AddCookie(cookie)
	cancelRec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(cancelRec, cancelReq)
	s.Equal(http.StatusConflict, cancelRec.Code)

	// The freed seats can be booked again.
	rec = s.bookViaAPI(cookie, showtimeId, seatIds[:2])
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *ReservationsSuite) TestCancelByNonOwner() {
	t := s.T()

	password := "Str0ng!Pass"
	ownerEmail := uniqueEmail("cancel-owner")
	otherEmail := uniqueEmail("cancel-other")
	seedUser(t, s.app, ownerEmail, password, domain.RoleUser)
	seedUser(t, s.app, otherEmail, password, domain.RoleUser)

	movieId := seedMovie(t, s.app, "Ownership Feature")
	theaterId, seatIds := seedTheater(t, s.app, "Ownership Hall")
	showtimeId := seedShowtime(t, s.app, movieId, theaterId, time.Now().Add(24*time.Hour), 8)

	ownerCookie := login(t, s.app, ownerEmail, password)

	rec := s.bookViaAPI(ownerCookie, showtimeId, seatIds[:1])
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created api.ReservationResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&created))

	otherCookie := login(t, s.app, otherEmail, password)

	cancelReq := httptest.NewRequest(http.MethodDelete, "/reservations/"+itoa(created.Id), nil)
	cancelReq.AddCookie(otherCookie)
	cancelRec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(cancelRec, cancelReq)

	s.Equal(http.StatusForbidden, cancelRec.Code)
	s.Equal(1, countActiveClaims(t, s.app, showtimeId))
}

func (s *ReservationsSuite) TestBookingStartedShowtime() {
	t := s.T()

	password := "Str0ng!Pass"
	email := uniqueEmail("late")
	seedUser(t, s.app, email, password, domain.RoleUser)

	movieId := seedMovie(t, s.app, "Started Feature")
	theaterId, seatIds := seedTheater(t, s.app, "Started Hall")
	showtimeId := seedShowtime(t, s.app, movieId, theaterId, time.Now().Add(-time.Hour), 8)

	cookie := login(t, s.app, email, password)

	rec := s.bookViaAPI(cookie, showtimeId, seatIds[:1])

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(0, countActiveClaims(t, s.app, showtimeId))
}

// TestConcurrentBookingSingleWinner races many coordinators against the real
// database. The partial unique index must let exactly one claim through.
func (s *ReservationsSuite) TestConcurrentBookingSingleWinner() {
	t := s.T()

	const workers = 16

	password := "Str0ng!Pass"
	userIds := make([]int, workers)
	for i := range userIds {
		userIds[i] = seedUser(t, s.app, uniqueEmail("racer"), password, domain.RoleUser)
	}

	movieId := seedMovie(t, s.app, "Race Feature")
	theaterId, seatIds := seedTheater(t, s.app, "Race Hall")
	showtimeId := seedShowtime(t, s.app, movieId, theaterId, time.Now().Add(24*time.Hour), 10)

	coordinator := s.app.App.Coordinator()
	target := seatIds[:1]

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userId int) {
			defer wg.Done()
			_, err := coordinator.Book(context.Background(), userId, showtimeId, target)
			results <- err
		}(userIds[i])
	}

	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var conflict *domain.SeatConflictError
			if s.ErrorAs(err, &conflict) {
				conflicts++
			}
		}
	}

	s.Equal(1, successes)
	s.Equal(workers-1, conflicts)
	s.Equal(1, countActiveClaims(t, s.app, showtimeId))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
