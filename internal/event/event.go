// Package event publishes reservation lifecycle events for downstream
// consumers (reporting, notifications). The core never depends on a consumer
// being present; publishing failures are logged, not surfaced to the caller.
package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
)

type ReservationEvent struct {
	EventID          uuid.UUID `json:"eventId"`
	Type             string    `json:"type"`
	ReservationID    int       `json:"reservationId"`
	BookingReference string    `json:"bookingReference"`
	UserID           int       `json:"userId"`
	ShowtimeID       int       `json:"showtimeId"`
	SeatIDs          []int     `json:"seatIds"`
	TotalPrice       float64   `json:"totalPrice"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func NewReservationEvent(eventType string, reservationID int, reference string, userID, showtimeID int, seatIDs []int, totalPrice float64) ReservationEvent {
	return ReservationEvent{
		EventID:          uuid.New(),
		Type:             eventType,
		ReservationID:    reservationID,
		BookingReference: reference,
		UserID:           userID,
		ShowtimeID:       showtimeID,
		SeatIDs:          seatIDs,
		TotalPrice:       totalPrice,
		OccurredAt:       time.Now().UTC(),
	}
}
