// service/staff/staff_service_test.go
package staffsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/mawule-gabriel/TestingLibrary/model"
	staffsvc "github.com/mawule-gabriel/TestingLibrary/service/staff"
	"github.com/mawule-gabriel/TestingLibrary/util/hash"
	jwtutil "github.com/mawule-gabriel/TestingLibrary/util/jwt"
)

const testSecret = "test_secret"

type repoMock struct {
	createFn  func(ctx context.Context, s *model.Staff) (int64, error)
	getFn     func(ctx context.Context, id int64) (*model.Staff, error)
	byEmailFn func(ctx context.Context, email string) (*model.Staff, error)
	listFn    func(ctx context.Context) ([]model.Staff, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *repoMock) Create(ctx context.Context, s *model.Staff) (int64, error) {
	return m.createFn(ctx, s)
}
func (m *repoMock) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) ByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return m.byEmailFn(ctx, email)
}
func (m *repoMock) List(ctx context.Context) ([]model.Staff, error) { return m.listFn(ctx) }
func (m *repoMock) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }

func validStaff() *model.Staff {
	return &model.Staff{
		FirstName: "Kojo",
		LastName:  "Owusu",
		Role:      "LIBRARIAN",
		Email:     "kojo@example.com",
		Phone:     "0244111222",
		HireDate:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdd_Validation(t *testing.T) {
	s := staffsvc.New(&repoMock{}, testSecret)

	cases := []struct {
		name     string
		mutate   func(*model.Staff)
		password string
	}{
		{"empty first name", func(st *model.Staff) { st.FirstName = "" }, "secret1"},
		{"empty role", func(st *model.Staff) { st.Role = " " }, "secret1"},
		{"email without @", func(st *model.Staff) { st.Email = "not-an-email" }, "secret1"},
		{"short phone", func(st *model.Staff) { st.Phone = "12345" }, "secret1"},
		{"unset hire date", func(st *model.Staff) { st.HireDate = time.Time{} }, "secret1"},
		{"future hire date", func(st *model.Staff) { st.HireDate = time.Now().AddDate(0, 0, 7) }, "secret1"},
		{"empty password", func(st *model.Staff) {}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := validStaff()
			tc.mutate(st)
			_, err := s.Add(context.Background(), st, tc.password)
			require.ErrorIs(t, err, staffsvc.ErrBadInput)
		})
	}
}

func TestAdd_HashesPassword(t *testing.T) {
	var created *model.Staff
	s := staffsvc.New(&repoMock{
		createFn: func(ctx context.Context, st *model.Staff) (int64, error) {
			created = st
			return 4, nil
		},
	}, testSecret)

	id, err := s.Add(context.Background(), validStaff(), "hunter22")
	require.NoError(t, err)
	require.EqualValues(t, 4, id)
	require.NotEqual(t, "hunter22", created.PasswordHash)
	require.True(t, hash.Check(created.PasswordHash, "hunter22"))
}

func TestAdd_DuplicateEmail(t *testing.T) {
	s := staffsvc.New(&repoMock{
		createFn: func(ctx context.Context, st *model.Staff) (int64, error) {
			return 0, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}, testSecret)

	_, err := s.Add(context.Background(), validStaff(), "hunter22")
	require.ErrorIs(t, err, staffsvc.ErrEmailTaken)
}

func TestAuthenticate_Success(t *testing.T) {
	hashed, err := hash.HashPassword("hunter22")
	require.NoError(t, err)

	stored := validStaff()
	stored.ID = 4
	stored.PasswordHash = hashed

	s := staffsvc.New(&repoMock{
		byEmailFn: func(ctx context.Context, email string) (*model.Staff, error) { return stored, nil },
	}, testSecret)

	st, token, err := s.Authenticate(context.Background(), "kojo@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NotEmpty(t, token)

	id, role, err := jwtutil.ParseAuth("Bearer "+token, testSecret)
	require.NoError(t, err)
	require.EqualValues(t, 4, id)
	require.Equal(t, "LIBRARIAN", role)
}

func TestAuthenticate_UnknownEmailIsSoftNegative(t *testing.T) {
	s := staffsvc.New(&repoMock{
		byEmailFn: func(ctx context.Context, email string) (*model.Staff, error) { return nil, sql.ErrNoRows },
	}, testSecret)

	st, token, err := s.Authenticate(context.Background(), "nobody@example.com", "whatever")
	require.NoError(t, err)
	require.Nil(t, st)
	require.Empty(t, token)
}

func TestAuthenticate_WrongPasswordIsSoftNegative(t *testing.T) {
	hashed, err := hash.HashPassword("hunter22")
	require.NoError(t, err)
	stored := validStaff()
	stored.PasswordHash = hashed

	s := staffsvc.New(&repoMock{
		byEmailFn: func(ctx context.Context, email string) (*model.Staff, error) { return stored, nil },
	}, testSecret)

	st, token, err := s.Authenticate(context.Background(), "kojo@example.com", "wrong")
	require.NoError(t, err)
	require.Nil(t, st)
	require.Empty(t, token)
}

func TestDelete_NotFound(t *testing.T) {
	s := staffsvc.New(&repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Staff, error) { return nil, sql.ErrNoRows },
	}, testSecret)

	require.ErrorIs(t, s.Delete(context.Background(), 12), staffsvc.ErrNotFound)
}
