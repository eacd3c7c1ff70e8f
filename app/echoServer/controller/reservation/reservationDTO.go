package reservation

import (
	"fmt"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type CreateReservationReq struct {
	PatronID        int64  `json:"patron_id" validate:"required,gt=0"`
	BookID          int64  `json:"book_id" validate:"required,gt=0"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	DueDate         string `json:"due_date" validate:"required"`
}

func (r CreateReservationReq) toModel() (*model.Reservation, error) {
	resDate, err := time.Parse("2006-01-02", r.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation_date: %w", err)
	}
	due, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date: %w", err)
	}
	return &model.Reservation{
		PatronID:        r.PatronID,
		BookID:          r.BookID,
		ReservationDate: resDate,
		Status:          model.ReservationPending,
		DueDate:         due,
	}, nil
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}
