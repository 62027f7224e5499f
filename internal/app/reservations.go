package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cinereserve/api"
	"cinereserve/internal/domain"
	"cinereserve/internal/event"
)

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateReservationRequest

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

	userId := app.contextGetUserId(r)

	reservation, err := app.coordinator.Book(r.Context(), userId, input.ShowtimeId, input.SeatIds)
	if err != nil {
		var invalidSelection *domain.InvalidSeatSelectionError
		var seatConflict *domain.SeatConflictError

		switch {
		case errors.As(err, &invalidSelection):
			app.badRequestResponse(w, r, invalidSelection)
		case errors.As(err, &seatConflict):
			logger.Info("seat conflict", "showtimeId", input.ShowtimeId, "seatIds", seatConflict.SeatIDs)
			app.seatConflictResponse(w, r, seatConflict.SeatIDs)
		case errors.Is(err, domain.ErrShowtimeClosed):
			app.errorResponse(w, r, http.StatusUnprocessableEntity, "The showtime has already started")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrStoreUnavailable):
			logger.Warn("booking timed out", "showtimeId", input.ShowtimeId)
			app.unavailableResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.notifyReservationConfirmed(r, reservation)

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelReservation(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	err = app.coordinator.Cancel(r.Context(), id, userId, app.isAdminSession(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrNotReservationOwner):
			logger.Warn("cancellation attempt by non-owner", "reservationId", id)
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrReservationNotCancellable):
			app.errorResponse(w, r, http.StatusConflict, "The reservation can no longer be cancelled")
		case errors.Is(err, domain.ErrStoreUnavailable):
			app.unavailableResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.publishReservationEvent(r, event.TypeReservationCancelled, &domain.Reservation{ID: id, UserID: userId})

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	pagination := domain.Pagination{
		Page:     readQueryInt(r, "page", DefaultPage),
		PageSize: readQueryInt(r, "pageSize", DefaultPageSize),
	}

	if pagination.Page < 1 || pagination.PageSize < 1 || pagination.PageSize > MaxPageSize {
		app.badRequestResponse(w, r, errors.New("invalid pagination parameters"))
		return
	}

	userId := app.contextGetUserId(r)

	reservations, metadata, err := app.reservationRepo.GetSummariesByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserReservationsResponse{
		Reservations: toReservationSummaries(reservations),
		Metadata:     toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserReservationById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	reservation, err := app.reservationRepo.GetByIdAndUserId(r.Context(), id, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.ReservationDetailResponse{
		ReservationSummary: toReservationSummary(reservation.ReservationSummary),
		ShowtimeId:         reservation.ShowtimeID,
		Seats:              toReservationSeats(reservation.Seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// notifyReservationConfirmed sends the confirmation email and publishes the
// confirmed event. Both happen off the request path; a failure in either
// never undoes a committed reservation.
func (app *Application) notifyReservationConfirmed(r *http.Request, reservation *domain.Reservation) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		logger.Error("failed to load user for confirmation email", "error", err)
	} else {
		go func() {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic occurred during sending confirmation mail", "panic", err)
				}
			}()

			seats := make([]string, len(reservation.Seats))
			for i, seat := range reservation.Seats {
				seats[i] = domain.Seat{Row: seat.Row, Number: seat.Number}.Label()
			}

			data := map[string]any{
				"fullName":         user.FullName,
				"bookingReference": reservation.BookingReference,
				"seats":            seats,
				"totalPrice":       reservation.TotalPrice,
			}

			err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
			if err != nil {
				logger.Error("failed to send confirmation email", "error", err)
			}
		}()
	}

	app.publishReservationEvent(r, event.TypeReservationConfirmed, reservation)
}

func (app *Application) publishReservationEvent(r *http.Request, eventType string, reservation *domain.Reservation) {
	logger := app.contextGetLogger(r)

	seatIds := make([]int, len(reservation.Seats))
	for i, seat := range reservation.Seats {
		seatIds[i] = seat.SeatID
	}

	evt := event.NewReservationEvent(
		eventType,
		reservation.ID,
		reservation.BookingReference,
		reservation.UserID,
		reservation.ShowtimeID,
		seatIds,
		reservation.TotalPrice,
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := app.publisher.Publish(ctx, evt); err != nil {
			logger.Error("failed to publish reservation event", "type", eventType, "error", err)
		}
	}()
}

func toReservationResponse(reservation *domain.Reservation) api.ReservationResponse {
	return api.ReservationResponse{
		Id:               reservation.ID,
		BookingReference: reservation.BookingReference,
		ShowtimeId:       reservation.ShowtimeID,
		Seats:            toReservationSeats(reservation.Seats),
		TotalPrice:       decimal.NewFromFloat(reservation.TotalPrice),
		Status:           string(reservation.Status),
		CreatedAt:        reservation.CreatedAt,
	}
}

func toReservationSeats(seats []domain.ReservationSeat) []api.ReservationSeat {
	result := make([]api.ReservationSeat, len(seats))
	for i, seat := range seats {
		result[i] = api.ReservationSeat{
			SeatId: seat.SeatID,
			Row:    seat.Row,
			Number: seat.Number,
			Class:  string(seat.Class),
		}
	}

	return result
}

func toReservationSummaries(reservations []domain.ReservationSummary) []api.ReservationSummary {
	summaries := make([]api.ReservationSummary, len(reservations))
	for i, reservation := range reservations {
		summaries[i] = toReservationSummary(reservation)
	}

	return summaries
}

func toReservationSummary(reservation domain.ReservationSummary) api.ReservationSummary {
	return api.ReservationSummary{
		Id:               reservation.ReservationID,
		BookingReference: reservation.BookingReference,
		MovieTitle:       reservation.MovieTitle,
		TheaterName:      reservation.TheaterName,
		ShowtimeStart:    reservation.ShowtimeStart,
		TotalPrice:       decimal.NewFromFloat(reservation.TotalPrice),
		Status:           string(reservation.Status),
		CreatedAt:        reservation.CreatedAt,
	}
}
