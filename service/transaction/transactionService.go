package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

const (
	// LoanPeriodDays is how long a borrow runs before the book is due back.
	LoanPeriodDays = 14
	// FinePerDay is charged per whole calendar day a return is late.
	FinePerDay = 1.0
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound        ErrCode = "TRANSACTION_NOT_FOUND"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrBadInput        ErrCode = "BAD_INPUT"
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
	return makeErr(ErrNotFound, fmt.Sprintf("no transaction found with ID: %d", id))
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
	GetBookStatusForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (model.BookStatus, error)
	Insert(ctx context.Context, tx *sql.Tx, t *model.Transaction) (int64, error)
	Update(ctx context.Context, tx *sql.Tx, t *model.Transaction) error
	UpdateBookStatus(ctx context.Context, tx *sql.Tx, bookID int64, status model.BookStatus) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Transaction, error)

	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// BookCache is told about committed status flips so cached book copies stay
// coherent with the books table. The book service satisfies it.
type BookCache interface {
	RefreshStatus(bookID int64, status model.BookStatus)
}

type Service interface {
	// Borrow opens a loan if the book is AVAILABLE. An unavailable book is a
	// normal negative outcome: Borrow reports (0, false, nil) and writes
	// nothing.
	Borrow(ctx context.Context, patronID, bookID int64) (int64, bool, error)

	// Return closes the loan in place: sets the return date, flips the type to
	// RETURN, computes the fine, and frees the book.
	Return(ctx context.Context, transactionID int64) (*model.Transaction, error)

	// Add inserts a caller-built transaction and syncs the book status to the
	// transaction type.
	Add(ctx context.Context, t *model.Transaction) (int64, error)

	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Transaction, error)
}

// ----- Service implementation -----

type service struct {
	db    *sql.DB
	r     Repo
	cache BookCache
	now   func() time.Time
}

func New(db *sql.DB, r Repo, cache BookCache) Service {
	return &service{db: db, r: r, cache: cache, now: time.Now}
}

func (s *service) refreshBook(bookID int64, status model.BookStatus) {
	if s.cache != nil {
		s.cache.RefreshStatus(bookID, status)
	}
}

// Borrow checks availability and writes the loan row plus the book status flip
// in one database transaction, so two concurrent borrows of the same book
// cannot both succeed.
func (s *service) Borrow(ctx context.Context, patronID, bookID int64) (int64, bool, error) {
	if patronID <= 0 || bookID <= 0 {
		return 0, false, makeErr(ErrBadInput, "patron and book IDs must be greater than zero")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	status, err := s.r.GetBookStatusForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = makeErr(ErrBookNotFound, fmt.Sprintf("no book found with ID: %d", bookID))
		}
		return 0, false, err
	}
	if status != model.BookAvailable {
		// Expected business outcome, not a fault.
		_ = tx.Rollback()
		return 0, false, nil
	}

	borrow := s.today()
	t := &model.Transaction{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrow,
		DueDate:    borrow.AddDate(0, 0, LoanPeriodDays),
		Fine:       0,
		Type:       model.TransactionBorrow,
	}

	id, err := s.r.Insert(ctx, tx, t)
	if err != nil {
		return 0, false, fmt.Errorf("insert borrow transaction: %w", err)
	}
	if err = s.r.UpdateBookStatus(ctx, tx, bookID, model.BookBorrowed); err != nil {
		return 0, false, fmt.Errorf("mark book %d borrowed: %w", bookID, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, false, err
	}
	s.refreshBook(bookID, model.BookBorrowed)
	return id, true, nil
}

func (s *service) Return(ctx context.Context, transactionID int64) (*model.Transaction, error) {
	if transactionID <= 0 {
		return nil, makeErr(ErrBadInput, "transaction ID must be greater than zero")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	t, err := s.r.GetForUpdate(ctx, tx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = notFound(transactionID)
		}
		return nil, err
	}
	if !t.Open() {
		err = makeErr(ErrAlreadyReturned, fmt.Sprintf("transaction %d is already closed", transactionID))
		return nil, err
	}

	today := s.today()
	t.ReturnDate = &today
	t.Type = model.TransactionReturn
	if late := daysBetween(t.DueDate, today); late > 0 {
		t.Fine = float64(late) * FinePerDay
	}

	if err = s.r.Update(ctx, tx, t); err != nil {
		return nil, fmt.Errorf("close transaction %d: %w", transactionID, err)
	}
	if err = s.r.UpdateBookStatus(ctx, tx, t.BookID, model.BookAvailable); err != nil {
		return nil, fmt.Errorf("mark book %d available: %w", t.BookID, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	s.refreshBook(t.BookID, model.BookAvailable)
	return t, nil
}

func (s *service) Add(ctx context.Context, t *model.Transaction) (int64, error) {
	if err := s.validate(t); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id, err := s.r.Insert(ctx, tx, t)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	status := model.BookAvailable
	if t.Type == model.TransactionBorrow {
		status = model.BookBorrowed
	}
	if err = s.r.UpdateBookStatus(ctx, tx, t.BookID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = makeErr(ErrBookNotFound, fmt.Sprintf("no book found with ID: %d", t.BookID))
		}
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	s.refreshBook(t.BookID, status)
	t.ID = id
	return id, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return makeErr(ErrBadInput, "transaction ID must be greater than zero")
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Transaction, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *service) validate(t *model.Transaction) error {
	switch {
	case t.PatronID <= 0:
		return makeErr(ErrBadInput, "invalid patron ID")
	case t.BookID <= 0:
		return makeErr(ErrBadInput, "invalid book ID")
	case t.BorrowDate.IsZero() || t.BorrowDate.After(s.now()):
		return makeErr(ErrBadInput, "borrow date cannot be unset or in the future")
	case t.DueDate.IsZero() || t.DueDate.Before(t.BorrowDate):
		return makeErr(ErrBadInput, "due date cannot be unset or before the borrow date")
	case t.Type != model.TransactionBorrow && t.Type != model.TransactionReturn:
		return makeErr(ErrBadInput, "transaction type must be BORROW or RETURN")
	}
	return nil
}

func (s *service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from one date to another, ignoring
// time of day.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
