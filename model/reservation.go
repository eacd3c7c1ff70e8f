// model/reservation.go
package model

import (
	"fmt"
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationFulfilled ReservationStatus = "FULFILLED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// ParseReservationStatus decodes a stored status string, matching
// case-insensitively. Unknown values are a decode error; the repository layer
// decides whether to fall back to PENDING.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ReservationPending:
		return ReservationPending, nil
	case ReservationFulfilled:
		return ReservationFulfilled, nil
	case ReservationCancelled:
		return ReservationCancelled, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

type Reservation struct {
	ID              int64             `json:"id"`
	PatronID        int64             `json:"patron_id"`
	BookID          int64             `json:"book_id"`
	ReservationDate time.Time         `json:"reservation_date"`
	Status          ReservationStatus `json:"status"`
	DueDate         time.Time         `json:"due_date"`
}
