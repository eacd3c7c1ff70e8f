// model/transaction.go
package model

import (
	"fmt"
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionBorrow TransactionType = "BORROW"
	TransactionReturn TransactionType = "RETURN"
)

// ParseTransactionType decodes a stored type string, matching
// case-insensitively. Unknown values are a decode error.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TransactionBorrow:
		return TransactionBorrow, nil
	case TransactionReturn:
		return TransactionReturn, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction records a loan. A borrow opens the record (ReturnDate nil, type
// BORROW); returning the book closes the same record in place (ReturnDate set,
// type RETURN, fine computed). Closed records are never reopened.
type Transaction struct {
	ID         int64           `json:"id"`
	PatronID   int64           `json:"patron_id"`
	BookID     int64           `json:"book_id"`
	BorrowDate time.Time       `json:"borrow_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	DueDate    time.Time       `json:"due_date"`
	Fine       float64         `json:"fine"`
	Type       TransactionType `json:"transaction_type"`
}

// Open reports whether the loan is still outstanding.
func (t *Transaction) Open() bool {
	return t.ReturnDate == nil && t.Type == TransactionBorrow
}
