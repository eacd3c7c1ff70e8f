package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mawule-gabriel/TestingLibrary/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookStatus) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, author, publication_year, genre, status, isbn)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING book_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.PublicationYear, b.Genre, string(b.Status), b.ISBN,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT book_id, title, author, publication_year, genre, status, isbn
FROM books
WHERE book_id = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
SELECT book_id, title, author, publication_year, genre, status, isbn
FROM books
ORDER BY book_id`
	return r.queryBooks(ctx, q)
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookStatus) error {
	const q = `UPDATE books SET status = $2 WHERE book_id = $1`
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
	const q = `DELETE FROM books WHERE book_id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Search(ctx context.Context, term string) ([]model.Book, error) {
	const q = `
SELECT book_id, title, author, publication_year, genre, status, isbn
FROM books
WHERE LOWER(title) LIKE $1 OR LOWER(author) LIKE $1
ORDER BY book_id`
	return r.queryBooks(ctx, q, "%"+strings.ToLower(term)+"%")
}

func (r *repo) queryBooks(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*model.Book, error) {
	var b model.Book
	var status string
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.Genre, &status, &b.ISBN); err != nil {
		return nil, err
	}
	st, err := model.ParseBookStatus(status)
	if err != nil {
		return nil, fmt.Errorf("decode book %d: %w", b.ID, err)
	}
	b.Status = st
	return &b, nil
}
