package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrValidation ErrCode = "BOOK_VALIDATION"
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

func notFound(id int64) error {
	return codedError{code: ErrNotFound, msg: fmt.Sprintf("no book found with ID: %d", id)}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ValidationError aggregates every rule the book violated so the caller can
// show them all at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "book validation failed: " + strings.Join(e.Violations, ", ")
}
func (e *ValidationError) Code() ErrCode { return ErrValidation }

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookStatus) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]model.Book, error)
}

type Service interface {
	Add(ctx context.Context, b *model.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookStatus) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]model.Book, error)
	RecentlyAdded() []model.Book
	RefreshStatus(id int64, status model.BookStatus)
}

// quickCacheCap bounds the id lookup cache. Once full it stops admitting new
// entries instead of evicting old ones.
const quickCacheCap = 100

type service struct {
	r Repo

	mu            sync.Mutex
	quick         map[int64]model.Book
	listing       []model.Book
	recentlyAdded []model.Book
}

func New(r Repo) Service {
	return &service{r: r, quick: make(map[int64]model.Book, quickCacheCap)}
}

func (s *service) Add(ctx context.Context, b *model.Book) (int64, error) {
	if err := validate(b); err != nil {
		return 0, err
	}
	if b.Status == "" {
		b.Status = model.BookAvailable
	}

	id, err := s.r.Create(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("add book %q: %w", b.Title, err)
	}
	b.ID = id

	s.mu.Lock()
	if len(s.quick) < quickCacheCap {
		s.quick[id] = *b
	}
	s.recentlyAdded = append(s.recentlyAdded, *b)
	s.mu.Unlock()
	return id, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	s.mu.Lock()
	if b, ok := s.quick[id]; ok {
		s.mu.Unlock()
		return &b, nil
	}
	s.mu.Unlock()

	b, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}

	s.mu.Lock()
	if len(s.quick) < quickCacheCap {
		s.quick[id] = *b
	}
	s.mu.Unlock()
	return b, nil
}

// List always reads the store and refreshes the listing cache on the way out.
func (s *service) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	s.mu.Lock()
	s.listing = append(s.listing[:0], books...)
	s.mu.Unlock()
	return books, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status model.BookStatus) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.r.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		return fmt.Errorf("update status of book %d: %w", id, err)
	}

	s.mu.Lock()
	if b, ok := s.quick[id]; ok {
		b.Status = status
		s.quick[id] = b
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the book everywhere except the recently-added history, which
// is kept as an audit trail.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	s.mu.Lock()
	delete(s.quick, id)
	for i, b := range s.listing {
		if b.ID == id {
			s.listing = append(s.listing[:i], s.listing[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *service) Search(ctx context.Context, term string) ([]model.Book, error) {
	books, err := s.r.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search books %q: %w", term, err)
	}
	return books, nil
}

// RecentlyAdded returns every book added through this service since startup,
// oldest first, including since-deleted ones.
func (s *service) RecentlyAdded() []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Book, len(s.recentlyAdded))
	copy(out, s.recentlyAdded)
	return out
}

// RefreshStatus updates the cached copies of a book whose status changed
// outside this service, such as a committed borrow or return.
func (s *service) RefreshStatus(id int64, status model.BookStatus) {
	s.mu.Lock()
	if b, ok := s.quick[id]; ok {
		b.Status = status
		s.quick[id] = b
	}
	for i := range s.listing {
		if s.listing[i].ID == id {
			s.listing[i].Status = status
			break
		}
	}
	s.mu.Unlock()
}

func validate(b *model.Book) error {
	var violations []string
	if strings.TrimSpace(b.Title) == "" {
		violations = append(violations, "title cannot be empty")
	}
	if strings.TrimSpace(b.Author) == "" {
		violations = append(violations, "author cannot be empty")
	}
	if b.PublicationYear < 1000 || b.PublicationYear > time.Now().Year() {
		violations = append(violations, "invalid publication year")
	}
	if b.ISBN != "" && !validISBN(b.ISBN) {
		violations = append(violations, "invalid ISBN format")
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

var (
	isbn10Re = regexp.MustCompile(`^[0-9]{9}[0-9X]$`)
	isbn13Re = regexp.MustCompile(`^97[89][0-9]{10}$`)
)

// validISBN accepts ISBN-10 and ISBN-13, with or without an "ISBN..." prefix
// and separator hyphens or spaces.
func validISBN(isbn string) bool {
	s := strings.ToUpper(strings.TrimSpace(isbn))
	if strings.HasPrefix(s, "ISBN") {
		s = strings.TrimPrefix(s, "ISBN")
		s = strings.TrimPrefix(s, "-13")
		s = strings.TrimPrefix(s, "-10")
		s = strings.TrimPrefix(s, ":")
		s = strings.TrimSpace(s)
	}
	s = strings.NewReplacer("-", "", " ", "").Replace(s)
	return isbn10Re.MatchString(s) || isbn13Re.MatchString(s)
}
