// service/patron/patron_service_test.go
package patronsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mawule-gabriel/TestingLibrary/model"
	patronsvc "github.com/mawule-gabriel/TestingLibrary/service/patron"
)

type repoMock struct {
	createFn        func(ctx context.Context, p *model.Patron) (int64, error)
	getFn           func(ctx context.Context, id int64) (*model.Patron, error)
	listFn          func(ctx context.Context) ([]model.Patron, error)
	updateAddressFn func(ctx context.Context, id int64, address string) error
	deleteFn        func(ctx context.Context, id int64) error
	searchFn        func(ctx context.Context, name string) ([]model.Patron, error)
}

func (m *repoMock) Create(ctx context.Context, p *model.Patron) (int64, error) {
	return m.createFn(ctx, p)
}
func (m *repoMock) GetByID(ctx context.Context, id int64) (*model.Patron, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Patron, error) { return m.listFn(ctx) }
func (m *repoMock) UpdateAddress(ctx context.Context, id int64, address string) error {
	return m.updateAddressFn(ctx, id, address)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) SearchByName(ctx context.Context, name string) ([]model.Patron, error) {
	return m.searchFn(ctx, name)
}

func validPatron() *model.Patron {
	return &model.Patron{
		FirstName: "Ama",
		LastName:  "Mensah",
		Email:     "ama.mensah@example.com",
		Phone:     "0244000000",
		Address:   "12 High St, Accra",
	}
}

func TestAdd_RequiresNamesAndEmail(t *testing.T) {
	s := patronsvc.New(&repoMock{})

	for _, mutate := range []func(*model.Patron){
		func(p *model.Patron) { p.FirstName = " " },
		func(p *model.Patron) { p.LastName = "" },
		func(p *model.Patron) { p.Email = "" },
	} {
		p := validPatron()
		mutate(p)
		_, err := s.Add(context.Background(), p)
		require.Equal(t, patronsvc.ErrBadInput, patronsvc.Code(err))
	}
}

func TestAdd_DefaultsMembershipDate(t *testing.T) {
	var created *model.Patron
	s := patronsvc.New(&repoMock{
		createFn: func(ctx context.Context, p *model.Patron) (int64, error) {
			created = p
			return 3, nil
		},
	})

	p := validPatron()
	require.True(t, p.MembershipDate.IsZero())

	id, err := s.Add(context.Background(), p)
	require.NoError(t, err)
	require.EqualValues(t, 3, id)
	require.EqualValues(t, 3, p.ID)
	require.False(t, created.MembershipDate.IsZero())
}

func TestGetByID_NotFound(t *testing.T) {
	s := patronsvc.New(&repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Patron, error) { return nil, sql.ErrNoRows },
	})

	_, err := s.GetByID(context.Background(), 77)
	require.Equal(t, patronsvc.ErrNotFound, patronsvc.Code(err))
	require.Contains(t, err.Error(), "77")
}

func TestUpdateAddress(t *testing.T) {
	updated := ""
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Patron, error) { return validPatron(), nil },
		updateAddressFn: func(ctx context.Context, id int64, address string) error {
			updated = address
			return nil
		},
	}
	s := patronsvc.New(m)

	require.Equal(t, patronsvc.ErrBadInput, patronsvc.Code(s.UpdateAddress(context.Background(), 1, "  ")))

	require.NoError(t, s.UpdateAddress(context.Background(), 1, "45 New Rd"))
	require.Equal(t, "45 New Rd", updated)

	m.getFn = func(ctx context.Context, id int64) (*model.Patron, error) { return nil, sql.ErrNoRows }
	require.Equal(t, patronsvc.ErrNotFound, patronsvc.Code(s.UpdateAddress(context.Background(), 2, "45 New Rd")))
}

func TestDelete_ChecksExistenceFirst(t *testing.T) {
	deletes := 0
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Patron, error) { return nil, sql.ErrNoRows },
		deleteFn: func(ctx context.Context, id int64) error {
			deletes++
			return nil
		},
	}
	s := patronsvc.New(m)

	require.Equal(t, patronsvc.ErrNotFound, patronsvc.Code(s.Delete(context.Background(), 9)))
	require.Zero(t, deletes)

	m.getFn = func(ctx context.Context, id int64) (*model.Patron, error) { return validPatron(), nil }
	require.NoError(t, s.Delete(context.Background(), 9))
	require.Equal(t, 1, deletes)
}

func TestSearchByName_PassesTermThrough(t *testing.T) {
	gotTerm := ""
	s := patronsvc.New(&repoMock{
		searchFn: func(ctx context.Context, name string) ([]model.Patron, error) {
			gotTerm = name
			return []model.Patron{*validPatron()}, nil
		},
	})

	out, err := s.SearchByName(context.Background(), "mensah")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "mensah", gotTerm)
}
