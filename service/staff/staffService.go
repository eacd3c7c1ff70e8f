package staffsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mawule-gabriel/TestingLibrary/model"
	staffrepo "github.com/mawule-gabriel/TestingLibrary/repository/staff"
	"github.com/mawule-gabriel/TestingLibrary/util/hash"
	jwtutil "github.com/mawule-gabriel/TestingLibrary/util/jwt"
)

var (
	ErrEmailTaken = errors.New("staff email already registered")
	ErrBadInput   = errors.New("bad input")
	ErrNotFound   = errors.New("staff not found")
)

const sessionTTLHours = 8

type Service interface {
	Add(ctx context.Context, st *model.Staff, password string) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
	List(ctx context.Context) ([]model.Staff, error)
	Delete(ctx context.Context, id int64) error

	// Authenticate checks credentials and issues a session token. A wrong
	// email or password is a normal negative outcome: it returns
	// (nil, "", nil), not an error.
	Authenticate(ctx context.Context, email, password string) (*model.Staff, string, error)
}

type service struct {
	r      staffrepo.Repo
	secret string
}

func New(r staffrepo.Repo, secret string) Service { return &service{r: r, secret: secret} }

func (s *service) Add(ctx context.Context, st *model.Staff, password string) (int64, error) {
	if err := validate(st, password); err != nil {
		return 0, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return 0, err
	}
	st.PasswordHash = hashed

	id, err := s.r.Create(ctx, st)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("add staff %s: %w", st.Email, err)
	}
	st.ID = id
	return id, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	st, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no staff found with ID: %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get staff %d: %w", id, err)
	}
	return st, nil
}

func (s *service) List(ctx context.Context) ([]model.Staff, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: no staff found with ID: %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete staff %d: %w", id, err)
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*model.Staff, string, error) {
	st, err := s.r.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("look up staff %s: %w", email, err)
	}
	if !hash.Check(st.PasswordHash, password) {
		return nil, "", nil
	}

	token, err := jwtutil.Issue(s.secret, st.ID, st.Role, sessionTTLHours)
	if err != nil {
		return nil, "", err
	}
	return st, token, nil
}

func validate(st *model.Staff, password string) error {
	switch {
	case strings.TrimSpace(st.FirstName) == "":
		return fmt.Errorf("%w: first name cannot be empty", ErrBadInput)
	case strings.TrimSpace(st.LastName) == "":
		return fmt.Errorf("%w: last name cannot be empty", ErrBadInput)
	case strings.TrimSpace(st.Role) == "":
		return fmt.Errorf("%w: role cannot be empty", ErrBadInput)
	case !strings.Contains(st.Email, "@"):
		return fmt.Errorf("%w: invalid email address", ErrBadInput)
	case len(st.Phone) < 10:
		return fmt.Errorf("%w: invalid phone number", ErrBadInput)
	case st.HireDate.IsZero() || st.HireDate.After(time.Now()):
		return fmt.Errorf("%w: hire date cannot be unset or in the future", ErrBadInput)
	case password == "":
		return fmt.Errorf("%w: password cannot be empty", ErrBadInput)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
