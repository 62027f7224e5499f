package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrRecordNotFound            = errors.New("record not found")
	ErrEditConflict              = errors.New("edit conflict")
	ErrUserAlreadyExists         = errors.New("user already exists")
	ErrDuplicateShowtime         = errors.New("theater already has a showtime at this start time")
	ErrShowtimeClosed            = errors.New("showtime has already started")
	ErrSeatAlreadyReserved       = errors.New("seat(s) are already reserved")
	ErrNotReservationOwner       = errors.New("reservation belongs to another user")
	ErrReservationNotCancellable = errors.New("reservation can no longer be cancelled")
	ErrStoreUnavailable          = errors.New("reservation store is unavailable, retry the operation")
)

// InvalidSeatSelectionError rejects a booking request before it touches the
// ledger: empty selection, duplicated seat ids, or seats that do not belong
// to the showtime's theater.
type InvalidSeatSelectionError struct {
	Reason string
}

func (e *InvalidSeatSelectionError) Error() string {
	return fmt.Sprintf("invalid seat selection: %s", e.Reason)
}

// SeatConflictError names the seats that already carry an active claim for
// the showtime. Callers are expected to refresh availability and retry with a
// different selection; seats are never silently substituted.
type SeatConflictError struct {
	SeatIDs []int
}

func (e *SeatConflictError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = strconv.Itoa(id)
	}
	sort.Strings(ids)

	return fmt.Sprintf("seats already reserved: %s", strings.Join(ids, ", "))
}
