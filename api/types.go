// Package api holds the JSON types exchanged with clients. They are the wire
// contract of the service; internal domain types never cross the boundary
// directly.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
}

// SeatConflictResponse names the seats that already carry an active claim so
// the seat map can highlight them. Clients refresh availability and resubmit
// a different selection.
type SeatConflictResponse struct {
	Message         string    `json:"message"`
	ConflictSeatIds []int     `json:"conflictSeatIds"`
	RequestId       string    `json:"requestId"`
	Timestamp       time.Time `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	PosterUrl   string `json:"posterUrl" validate:"omitempty,url"`
	Genre       string `json:"genre" validate:"required,max=50"`
	Duration    int    `json:"durationMinutes" validate:"required,min=1,max=600"`
	ReleaseDate Date   `json:"releaseDate" validate:"required"`
	Rating      string `json:"rating" validate:"max=10"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	PosterUrl   *string `json:"posterUrl" validate:"omitempty,url"`
	Genre       *string `json:"genre" validate:"omitempty,max=50"`
	Duration    *int    `json:"durationMinutes" validate:"omitempty,min=1,max=600"`
	ReleaseDate *Date   `json:"releaseDate"`
	Rating      *string `json:"rating" validate:"omitempty,max=10"`
}

type MovieResponse struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PosterUrl   string `json:"posterUrl"`
	Genre       string `json:"genre"`
	Duration    int    `json:"durationMinutes"`
	ReleaseDate Date   `json:"releaseDate"`
	Rating      string `json:"rating"`
	Active      bool   `json:"active"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata Metadata        `json:"metadata"`
}

type TheaterResponse struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	SeatCount int    `json:"seatCount"`
}

type CreateShowtimeRequest struct {
	MovieId   int             `json:"movieId" validate:"required,min=1"`
	TheaterId int             `json:"theaterId" validate:"required,min=1"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

type ShowtimeResponse struct {
	Id             int             `json:"id"`
	MovieId        int             `json:"movieId"`
	TheaterId      int             `json:"theaterId"`
	MovieTitle     string          `json:"movieTitle"`
	TheaterName    string          `json:"theaterName"`
	StartTime      time.Time       `json:"startTime"`
	Price          decimal.Decimal `json:"price"`
	AvailableSeats int             `json:"availableSeats"`
}

type Seat struct {
	Id        int    `json:"id"`
	Row       string `json:"row"`
	Number    int    `json:"number"`
	Class     string `json:"class"`
	Available bool   `json:"available"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ShowtimeId int       `json:"showtimeId"`
	SeatRows   []SeatRow `json:"seatRows"`
}

type TheaterSeatsResponse struct {
	TheaterId int       `json:"theaterId"`
	SeatRows  []SeatRow `json:"seatRows"`
}

type CreateReservationRequest struct {
	ShowtimeId int   `json:"showtimeId" validate:"required,min=1"`
	SeatIds    []int `json:"seatIds" validate:"required,min=1,max=10,dive,min=1"`
}

type ReservationSeat struct {
	SeatId int    `json:"seatId"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Class  string `json:"class"`
}

type ReservationResponse struct {
	Id               int               `json:"id"`
	BookingReference string            `json:"bookingReference"`
	ShowtimeId       int               `json:"showtimeId"`
	Seats            []ReservationSeat `json:"seats"`
	TotalPrice       decimal.Decimal   `json:"totalPrice"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"createdAt"`
}

type ReservationSummary struct {
	Id               int             `json:"id"`
	BookingReference string          `json:"bookingReference"`
	MovieTitle       string          `json:"movieTitle"`
	TheaterName      string          `json:"theaterName"`
	ShowtimeStart    time.Time       `json:"showtimeStart"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type UserReservationsResponse struct {
	Reservations []ReservationSummary `json:"reservations"`
	Metadata     Metadata             `json:"metadata"`
}

type ReservationDetailResponse struct {
	ReservationSummary
	ShowtimeId int               `json:"showtimeId"`
	Seats      []ReservationSeat `json:"seats"`
}

type ShowtimeReport struct {
	ShowtimeId        int             `json:"showtimeId"`
	MovieTitle        string          `json:"movieTitle"`
	TheaterName       string          `json:"theaterName"`
	StartTime         time.Time       `json:"startTime"`
	TotalReservations int             `json:"totalReservations"`
	SeatsBooked       int             `json:"seatsBooked"`
	SeatsAvailable    int             `json:"seatsAvailable"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
}

type ShowtimeReportsResponse struct {
	Reports []ShowtimeReport `json:"reports"`
}

type SummaryReportResponse struct {
	TotalReservations int             `json:"totalReservations"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalCustomers    int             `json:"totalCustomers"`
	TotalSeatsBooked  int             `json:"totalSeatsBooked"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
