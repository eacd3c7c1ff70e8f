// model/book.go
package model

import (
	"fmt"
	"strings"
)

type BookStatus string

const (
	BookAvailable BookStatus = "AVAILABLE"
	BookBorrowed  BookStatus = "BORROWED"
	BookReserved  BookStatus = "RESERVED"
)

// ParseBookStatus decodes a stored status string. Input is matched
// case-insensitively; anything unknown is a decode error.
func ParseBookStatus(s string) (BookStatus, error) {
	switch BookStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case BookAvailable:
		return BookAvailable, nil
	case BookBorrowed:
		return BookBorrowed, nil
	case BookReserved:
		return BookReserved, nil
	default:
		return "", fmt.Errorf("unknown book status %q", s)
	}
}

type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationYear int        `json:"publication_year"`
	Genre           string     `json:"genre,omitempty"`
	Status          BookStatus `json:"status"`
	ISBN            string     `json:"isbn,omitempty"`
}
