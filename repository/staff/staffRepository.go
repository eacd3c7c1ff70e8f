package staffrepo

import (
	"context"
	"database/sql"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type Repo interface {
	Create(ctx context.Context, s *model.Staff) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
	ByEmail(ctx context.Context, email string) (*model.Staff, error)
	List(ctx context.Context) ([]model.Staff, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const staffCols = `staff_id, first_name, last_name, role, email, phone, hire_date, password_hash`

func (r *repo) Create(ctx context.Context, s *model.Staff) (int64, error) {
	const q = `
INSERT INTO staff (first_name, last_name, role, email, phone, hire_date, password_hash)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING staff_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		s.FirstName, s.LastName, s.Role, s.Email, s.Phone, s.HireDate, s.PasswordHash,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	q := `SELECT ` + staffCols + ` FROM staff WHERE staff_id = $1`
	return scanStaff(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Staff, error) {
	q := `SELECT ` + staffCols + ` FROM staff WHERE lower(email) = lower($1)`
	return scanStaff(r.db.QueryRowContext(ctx, q, email))
}

func (r *repo) List(ctx context.Context) ([]model.Staff, error) {
	q := `SELECT ` + staffCols + ` FROM staff ORDER BY staff_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Role, &s.Email, &s.Phone, &s.HireDate, &s.PasswordHash); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM staff WHERE staff_id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanStaff(row *sql.Row) (*model.Staff, error) {
	var s model.Staff
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Role, &s.Email, &s.Phone, &s.HireDate, &s.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
