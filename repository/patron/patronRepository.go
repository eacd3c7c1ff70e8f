package patronrepo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type Repo interface {
	Create(ctx context.Context, p *model.Patron) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Patron, error)
	List(ctx context.Context) ([]model.Patron, error)
	UpdateAddress(ctx context.Context, id int64, address string) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string) ([]model.Patron, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const patronCols = `patron_id, first_name, last_name, email, phone, address, membership_date`

func (r *repo) Create(ctx context.Context, p *model.Patron) (int64, error) {
	const q = `
INSERT INTO patrons (first_name, last_name, email, phone, address, membership_date)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING patron_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		p.FirstName, p.LastName, p.Email, p.Phone, p.Address, p.MembershipDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Patron, error) {
	q := `SELECT ` + patronCols + ` FROM patrons WHERE patron_id = $1`
	var p model.Patron
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address, &p.MembershipDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context) ([]model.Patron, error) {
	q := `SELECT ` + patronCols + ` FROM patrons ORDER BY patron_id`
	return r.queryPatrons(ctx, q)
}

func (r *repo) UpdateAddress(ctx context.Context, id int64, address string) error {
	const q = `UPDATE patrons SET address = $2 WHERE patron_id = $1`
	res, err := r.db.ExecContext(ctx, q, id, address)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM patrons WHERE patron_id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) SearchByName(ctx context.Context, name string) ([]model.Patron, error) {
	q := `SELECT ` + patronCols + `
FROM patrons
WHERE LOWER(first_name) LIKE $1 OR LOWER(last_name) LIKE $1
ORDER BY patron_id`
	return r.queryPatrons(ctx, q, "%"+strings.ToLower(name)+"%")
}

func (r *repo) queryPatrons(ctx context.Context, q string, args ...any) ([]model.Patron, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Patron
	for rows.Next() {
		var p model.Patron
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address, &p.MembershipDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
