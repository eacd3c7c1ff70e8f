// repository/transaction/transactionRepository.go
package transaction

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

// Repo persists loan records. The tx-scoped methods exist so the borrow and
// return workflows can lock the book row, write the loan, and flip the book
// status inside one database transaction.
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

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const transactionCols = `transaction_id, patron_id, book_id, borrow_date, return_date, due_date, fine, transaction_type`

func (r *repo) GetBookStatusForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (model.BookStatus, error) {
	const q = `
		SELECT status
		FROM books
		WHERE book_id = $1
		FOR UPDATE`
	var status string
	if err := tx.QueryRowContext(ctx, q, bookID).Scan(&status); err != nil {
		return "", err
	}
	return model.ParseBookStatus(status)
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, t *model.Transaction) (int64, error) {
	const q = `
		INSERT INTO transactions (patron_id, book_id, borrow_date, return_date, due_date, fine, transaction_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING transaction_id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		t.PatronID, t.BookID, t.BorrowDate, t.ReturnDate, t.DueDate, t.Fine, string(t.Type),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites the row in place. Closing a loan mutates the original
// borrow record rather than appending a new one.
func (r *repo) Update(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	const q = `
		UPDATE transactions
		SET patron_id = $2,
			book_id = $3,
			borrow_date = $4,
			return_date = $5,
			due_date = $6,
			fine = $7,
			transaction_type = $8
		WHERE transaction_id = $1`
	res, err := tx.ExecContext(ctx, q,
		t.ID, t.PatronID, t.BookID, t.BorrowDate, t.ReturnDate, t.DueDate, t.Fine, string(t.Type),
	)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) UpdateBookStatus(ctx context.Context, tx *sql.Tx, bookID int64, status model.BookStatus) error {
	const q = `
		UPDATE books
		SET status = $2
		WHERE book_id = $1`
	res, err := tx.ExecContext(ctx, q, bookID, string(status))
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Transaction, error) {
	q := `SELECT ` + transactionCols + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE`
	return scanTransaction(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	q := `SELECT ` + transactionCols + ` FROM transactions WHERE transaction_id = $1`
	return scanTransaction(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context) ([]model.Transaction, error) {
	q := `SELECT ` + transactionCols + ` FROM transactions ORDER BY transaction_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM transactions WHERE transaction_id = $1`
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

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var t model.Transaction
	var typ string
	err := row.Scan(&t.ID, &t.PatronID, &t.BookID, &t.BorrowDate, &t.ReturnDate, &t.DueDate, &t.Fine, &typ)
	if err != nil {
		return nil, err
	}
	tt, err := model.ParseTransactionType(typ)
	if err != nil {
		// Documented fallback from the legacy data set.
		slog.Warn("transaction type fallback", "transaction_id", t.ID, "stored", typ)
		tt = model.TransactionReturn
	}
	t.Type = tt
	return &t, nil
}
