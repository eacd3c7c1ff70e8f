package patronsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "PATRON_NOT_FOUND"
	ErrBadInput ErrCode = "PATRON_BAD_INPUT"
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
	return makeErr(ErrNotFound, fmt.Sprintf("no patron found with ID: %d", id))
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
	Create(ctx context.Context, p *model.Patron) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Patron, error)
	List(ctx context.Context) ([]model.Patron, error)
	UpdateAddress(ctx context.Context, id int64, address string) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string) ([]model.Patron, error)
}

type Service interface {
	Add(ctx context.Context, p *model.Patron) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Patron, error)
	List(ctx context.Context) ([]model.Patron, error)
	UpdateAddress(ctx context.Context, id int64, address string) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string) ([]model.Patron, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Add(ctx context.Context, p *model.Patron) (int64, error) {
	switch {
	case strings.TrimSpace(p.FirstName) == "":
		return 0, makeErr(ErrBadInput, "patron first name cannot be empty")
	case strings.TrimSpace(p.LastName) == "":
		return 0, makeErr(ErrBadInput, "patron last name cannot be empty")
	case strings.TrimSpace(p.Email) == "":
		return 0, makeErr(ErrBadInput, "patron email cannot be empty")
	}
	if p.MembershipDate.IsZero() {
		p.MembershipDate = time.Now()
	}

	id, err := s.r.Create(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("add patron %s %s: %w", p.FirstName, p.LastName, err)
	}
	p.ID = id
	return id, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Patron, error) {
	p, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get patron %d: %w", id, err)
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]model.Patron, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patrons: %w", err)
	}
	return out, nil
}

func (s *service) UpdateAddress(ctx context.Context, id int64, address string) error {
	if strings.TrimSpace(address) == "" {
		return makeErr(ErrBadInput, "address cannot be empty")
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.r.UpdateAddress(ctx, id, address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		return fmt.Errorf("update address of patron %d: %w", id, err)
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
		return fmt.Errorf("delete patron %d: %w", id, err)
	}
	return nil
}

func (s *service) SearchByName(ctx context.Context, name string) ([]model.Patron, error) {
	out, err := s.r.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search patrons %q: %w", name, err)
	}
	return out, nil
}
