package reservationrepo

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type Repo interface {
	Create(ctx context.Context, res *model.Reservation) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const reservationCols = `reservation_id, patron_id, book_id, reservation_date, status, due_date`

func (r *repo) Create(ctx context.Context, res *model.Reservation) (int64, error) {
	const q = `
INSERT INTO reservations (patron_id, book_id, reservation_date, status, due_date)
VALUES ($1,$2,$3,$4,$5)
RETURNING reservation_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		res.PatronID, res.BookID, res.ReservationDate, string(res.Status), res.DueDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE reservation_id = $1`
	return scanReservation(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations ORDER BY reservation_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	const q = `UPDATE reservations SET status = $2 WHERE reservation_id = $1`
	res, err := r.db.ExecContext(ctx, q, id, string(status))
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM reservations WHERE reservation_id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var status string
	err := row.Scan(&res.ID, &res.PatronID, &res.BookID, &res.ReservationDate, &status, &res.DueDate)
	if err != nil {
		return nil, err
	}
	st, err := model.ParseReservationStatus(status)
	if err != nil {
		// Documented fallback: rows written before the status set was fixed
		// decode as PENDING.
		slog.Warn("reservation status fallback", "reservation_id", res.ID, "stored", status)
		st = model.ReservationPending
	}
	res.Status = st
	return &res, nil
}
