package reservationsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type ErrCode string

const (
	ErrNotFound       ErrCode = "RESERVATION_NOT_FOUND"
	ErrPatronNotFound ErrCode = "PATRON_NOT_FOUND"
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrBadInput       ErrCode = "RESERVATION_BAD_INPUT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func notFound(id int64) error {
	return makeErr(ErrNotFound, fmt.Sprintf("no reservation found with ID: %d", id))
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, res *model.Reservation) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

// PatronGetter and BookGetter resolve the weak references a reservation
// carries; the patron and book repositories satisfy them.
type PatronGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Patron, error)
}

type BookGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	Add(ctx context.Context, res *model.Reservation) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r       Repo
	patrons PatronGetter
	books   BookGetter
}

func New(r Repo, patrons PatronGetter, books BookGetter) Service {
	return &service{r: r, patrons: patrons, books: books}
}

func (s *service) Add(ctx context.Context, res *model.Reservation) (int64, error) {
	switch {
	case res.PatronID <= 0:
		return 0, makeErr(ErrBadInput, "invalid patron ID")
	case res.BookID <= 0:
		return 0, makeErr(ErrBadInput, "invalid book ID")
	case res.ReservationDate.IsZero():
		return 0, makeErr(ErrBadInput, "reservation date cannot be unset")
	case !res.DueDate.IsZero() && res.DueDate.Before(res.ReservationDate):
		return 0, makeErr(ErrBadInput, "due date cannot be before the reservation date")
	}

	if _, err := s.patrons.GetByID(ctx, res.PatronID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrPatronNotFound, fmt.Sprintf("no patron found with ID: %d", res.PatronID))
		}
		return 0, fmt.Errorf("resolve patron %d: %w", res.PatronID, err)
	}
	if _, err := s.books.GetByID(ctx, res.BookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrBookNotFound, fmt.Sprintf("no book found with ID: %d", res.BookID))
		}
		return 0, fmt.Errorf("resolve book %d: %w", res.BookID, err)
	}

	if res.Status == "" {
		res.Status = model.ReservationPending
	}
	id, err := s.r.Create(ctx, res)
	if err != nil {
		return 0, fmt.Errorf("add reservation: %w", err)
	}
	res.ID = id
	return id, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return res, nil
}

func (s *service) List(ctx context.Context) ([]model.Reservation, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.r.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		return fmt.Errorf("update status of reservation %d: %w", id, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	return nil
}
