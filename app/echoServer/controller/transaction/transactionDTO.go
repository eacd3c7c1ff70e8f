package transaction

import (
	"fmt"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type BorrowReq struct {
	PatronID int64 `json:"patron_id" validate:"required,gt=0"`
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
}

type CreateTransactionReq struct {
	PatronID   int64   `json:"patron_id" validate:"required,gt=0"`
	BookID     int64   `json:"book_id" validate:"required,gt=0"`
	BorrowDate string  `json:"borrow_date" validate:"required"`
	ReturnDate string  `json:"return_date"`
	DueDate    string  `json:"due_date" validate:"required"`
	Fine       float64 `json:"fine" validate:"gte=0"`
	Type       string  `json:"transaction_type" validate:"required"`
}

func (r CreateTransactionReq) toModel() (*model.Transaction, error) {
	borrow, err := parseDate(r.BorrowDate)
	if err != nil {
		return nil, fmt.Errorf("invalid borrow_date: %w", err)
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date: %w", err)
	}
	typ, err := model.ParseTransactionType(r.Type)
	if err != nil {
		return nil, err
	}

	t := &model.Transaction{
		PatronID:   r.PatronID,
		BookID:     r.BookID,
		BorrowDate: borrow,
		DueDate:    due,
		Fine:       r.Fine,
		Type:       typ,
	}
	if r.ReturnDate != "" {
		ret, err := parseDate(r.ReturnDate)
		if err != nil {
			return nil, fmt.Errorf("invalid return_date: %w", err)
		}
		t.ReturnDate = &ret
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
