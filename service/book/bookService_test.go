// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mawule-gabriel/TestingLibrary/model"
	booksvc "github.com/mawule-gabriel/TestingLibrary/service/book"
)

type repoMock struct {
	createFn       func(ctx context.Context, b *model.Book) (int64, error)
	getFn          func(ctx context.Context, id int64) (*model.Book, error)
	listFn         func(ctx context.Context) ([]model.Book, error)
	updateStatusFn func(ctx context.Context, id int64, status model.BookStatus) error
	deleteFn       func(ctx context.Context, id int64) error
	searchFn       func(ctx context.Context, term string) ([]model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) (int64, error) {
	return m.createFn(ctx, b)
}
func (m *repoMock) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Book, error) { return m.listFn(ctx) }
func (m *repoMock) UpdateStatus(ctx context.Context, id int64, status model.BookStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) Search(ctx context.Context, term string) ([]model.Book, error) {
	return m.searchFn(ctx, term)
}

func validBook() *model.Book {
	return &model.Book{
		Title:           "The Go Programming Language",
		Author:          "Donovan and Kernighan",
		PublicationYear: 2015,
		Genre:           "Programming",
		ISBN:            "978-0134190440",
	}
}

func TestAdd_ValidationAggregatesAllViolations(t *testing.T) {
	s := booksvc.New(&repoMock{})

	b := &model.Book{Title: "", Author: "", PublicationYear: 999, ISBN: "not-an-isbn"}
	_, err := s.Add(context.Background(), b)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if booksvc.Code(err) != booksvc.ErrValidation {
		t.Fatalf("got code %q; want %q", booksvc.Code(err), booksvc.ErrValidation)
	}
	msg := err.Error()
	for _, want := range []string{
		"title cannot be empty",
		"author cannot be empty",
		"invalid publication year",
		"invalid ISBN format",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing violation %q", msg, want)
		}
	}
}

func TestAdd_YearBounds(t *testing.T) {
	s := booksvc.New(&repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) { return 1, nil },
	})

	b := validBook()
	b.PublicationYear = time.Now().Year() + 1
	if _, err := s.Add(context.Background(), b); err == nil {
		t.Fatal("expected error for future publication year")
	}

	b = validBook()
	b.PublicationYear = 1000
	if _, err := s.Add(context.Background(), b); err != nil {
		t.Fatalf("year 1000 should be accepted: %v", err)
	}
}

func TestAdd_ISBNFormats(t *testing.T) {
	cases := []struct {
		isbn string
		ok   bool
	}{
		{"", true}, // absent is fine
		{"0134190440", true},
		{"013419044X", true},
		{"9780134190440", true},
		{"978-0134190440", true},
		{"ISBN 978-0-13-419044-0", true},
		{"1234", false},
		{"97912345678901", false},
		{"abcdefghij", false},
	}
	for _, tc := range cases {
		s := booksvc.New(&repoMock{
			createFn: func(ctx context.Context, b *model.Book) (int64, error) { return 1, nil },
		})
		b := validBook()
		b.ISBN = tc.isbn
		_, err := s.Add(context.Background(), b)
		if tc.ok && err != nil {
			t.Errorf("ISBN %q rejected: %v", tc.isbn, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ISBN %q accepted; want validation error", tc.isbn)
		}
	}
}

func TestGetByID_CacheHitSkipsStore(t *testing.T) {
	storeCalls := 0
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) { return 7, nil },
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			storeCalls++
			return validBook(), nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.Add(context.Background(), validBook()); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 7 {
		t.Fatalf("got id %d; want 7", got.ID)
	}
	if storeCalls != 0 {
		t.Fatalf("store hit %d times; want cache hit", storeCalls)
	}
}

func TestGetByID_MissFetchesAndCaches(t *testing.T) {
	storeCalls := 0
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			storeCalls++
			b := validBook()
			b.ID = id
			return b, nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.GetByID(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetByID(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if storeCalls != 1 {
		t.Fatalf("store hit %d times; want 1 (second read cached)", storeCalls)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m)

	_, err := s.GetByID(context.Background(), 42)
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want not-found code", err)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Fatalf("message %q should name the id", err.Error())
	}
}

func TestQuickCache_StopsInsertingWhenFull(t *testing.T) {
	var nextID int64
	storeGets := map[int64]int{}
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) {
			nextID++
			return nextID, nil
		},
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			storeGets[id]++
			b := validBook()
			b.ID = id
			return b, nil
		},
	}
	s := booksvc.New(m)

	for i := 0; i < 101; i++ {
		b := validBook()
		b.Title = fmt.Sprintf("Book %d", i)
		if _, err := s.Add(context.Background(), b); err != nil {
			t.Fatal(err)
		}
	}

	// First hundred were cached at insert time.
	if _, err := s.GetByID(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if storeGets[100] != 0 {
		t.Fatalf("book 100 should be cached, store hit %d times", storeGets[100])
	}

	// The 101st never entered the cache, and misses don't evict anyone.
	if _, err := s.GetByID(context.Background(), 101); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetByID(context.Background(), 101); err != nil {
		t.Fatal(err)
	}
	if storeGets[101] != 2 {
		t.Fatalf("book 101 should bypass the full cache, store hit %d times; want 2", storeGets[101])
	}
}

func TestList_IdempotentAndStoreSourced(t *testing.T) {
	listCalls := 0
	books := []model.Book{*validBook(), *validBook()}
	books[0].ID, books[1].ID = 1, 2
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			listCalls++
			out := make([]model.Book, len(books))
			copy(out, books)
			return out, nil
		},
	}
	s := booksvc.New(m)

	first, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if listCalls != 2 {
		t.Fatalf("List must always hit the store; got %d calls", listCalls)
	}
	if len(first) != len(second) {
		t.Fatalf("lists differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDelete_KeepsHistoryDropsCache(t *testing.T) {
	deleted := false
	storeGets := 0
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) { return 5, nil },
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			storeGets++
			b := validBook()
			b.ID = id
			return b, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.Add(context.Background(), validBook()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("repo delete not called")
	}
	if got := s.RecentlyAdded(); len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("recently-added history should survive delete, got %+v", got)
	}

	// Cache entry is gone, next read goes to the store.
	if _, err := s.GetByID(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if storeGets == 0 {
		t.Fatal("expected store read after cache eviction")
	}
}

func TestRefreshStatus_UpdatesCachedCopy(t *testing.T) {
	storeGets := 0
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) { return 7, nil },
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			storeGets++
			return validBook(), nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.Add(context.Background(), validBook()); err != nil {
		t.Fatal(err)
	}

	s.RefreshStatus(7, model.BookBorrowed)

	got, err := s.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.BookBorrowed {
		t.Fatalf("cached status %q; want %q", got.Status, model.BookBorrowed)
	}
	if storeGets != 0 {
		t.Fatalf("store hit %d times; refresh must update the cached copy in place", storeGets)
	}

	// Unknown ids are a no-op.
	s.RefreshStatus(999, model.BookReserved)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m)

	err := s.UpdateStatus(context.Background(), 9, model.BookBorrowed)
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want not-found code", err)
	}
}
