package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a Postgres pool through the pgx stdlib driver and verifies the
// connection.
func New(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the schema. Statements are idempotent so startup can run
// them unconditionally.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
			book_id          BIGSERIAL PRIMARY KEY,
			title            TEXT NOT NULL,
			author           TEXT NOT NULL,
			publication_year INT  NOT NULL,
			genre            TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'AVAILABLE',
			isbn             TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS patrons (
			patron_id       BIGSERIAL PRIMARY KEY,
			first_name      TEXT NOT NULL,
			last_name       TEXT NOT NULL,
			email           TEXT NOT NULL,
			phone           TEXT NOT NULL DEFAULT '',
			address         TEXT NOT NULL DEFAULT '',
			membership_date DATE NOT NULL DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE IF NOT EXISTS staff (
			staff_id      BIGSERIAL PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			role          TEXT NOT NULL,
			email         TEXT NOT NULL,
			phone         TEXT NOT NULL,
			hire_date     DATE NOT NULL,
			password_hash TEXT NOT NULL,
			CONSTRAINT staff_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			reservation_id   BIGSERIAL PRIMARY KEY,
			patron_id        BIGINT NOT NULL,
			book_id          BIGINT NOT NULL,
			reservation_date DATE NOT NULL,
			status           TEXT NOT NULL DEFAULT 'PENDING',
			due_date         DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id   BIGSERIAL PRIMARY KEY,
			patron_id        BIGINT NOT NULL,
			book_id          BIGINT NOT NULL,
			borrow_date      DATE NOT NULL,
			return_date      DATE,
			due_date         DATE NOT NULL,
			fine             DOUBLE PRECISION NOT NULL DEFAULT 0,
			transaction_type TEXT NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
