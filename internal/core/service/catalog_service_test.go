package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

func TestCatalog_AddBook_PersistsFullList(t *testing.T) {
	c, bookRepo, _ := newTestCatalog(domain.NewBook("Emma", "Austen"))

	book, err := c.AddBook(context.Background(), "Dune", "Herbert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !book.Available {
		t.Error("expected a new book to be available")
	}

	saved := bookRepo.last()
	if len(saved) != 2 || saved[0].Title != "Emma" || saved[1].Title != "Dune" {
		t.Fatalf("expected full rewrite in insertion order, got %+v", saved)
	}
}

func TestCatalog_AddBook_DuplicateTitlesAllowed(t *testing.T) {
	c, _, _ := newTestCatalog()

	_, _ = c.AddBook(context.Background(), "Dune", "Herbert")
	if _, err := c.AddBook(context.Background(), "dune", "Someone Else"); err != nil {
		t.Fatalf("expected duplicate title to be accepted, got %v", err)
	}
	if n := len(c.ListBooks()); n != 2 {
		t.Fatalf("expected 2 books, got %d", n)
	}

	found, _ := c.FindBook("DUNE")
	if found.Author != "Herbert" {
		t.Errorf("expected first match to win, got %q", found.Author)
	}
}

func TestCatalog_AddBook_RejectsSeparator(t *testing.T) {
	c, bookRepo, _ := newTestCatalog()

	if _, err := c.AddBook(context.Background(), "A|B", "X"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(bookRepo.saves) != 0 {
		t.Error("expected no write on invalid input")
	}
}

func TestCatalog_AddBook_SaveFailureKeepsState(t *testing.T) {
	c, bookRepo, _ := newTestCatalog()
	bookRepo.saveErr = errors.New("disk full")

	if _, err := c.AddBook(context.Background(), "Dune", "Herbert"); err == nil {
		t.Fatal("expected error")
	}
	if n := len(c.ListBooks()); n != 0 {
		t.Fatalf("expected catalog unchanged, got %d books", n)
	}
}

func TestCatalog_RemoveBook(t *testing.T) {
	c, bookRepo, _ := newTestCatalog(domain.NewBook("Dune", "Herbert"), domain.NewBook("Emma", "Austen"))

	if err := c.RemoveBook(context.Background(), "DUNE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved := bookRepo.last()
	if len(saved) != 1 || saved[0].Title != "Emma" {
		t.Fatalf("unexpected store contents: %+v", saved)
	}
}

func TestCatalog_RemoveBook_NotFound(t *testing.T) {
	c, bookRepo, _ := newTestCatalog(domain.NewBook("Dune", "Herbert"))

	if err := c.RemoveBook(context.Background(), "Emma"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
	if len(bookRepo.saves) != 0 {
		t.Error("expected no write when the book is absent")
	}
	if n := len(c.ListBooks()); n != 1 {
		t.Errorf("expected state unchanged, got %d books", n)
	}
}

func TestCatalog_RemoveBook_CheckedOutIsNotGuarded(t *testing.T) {
	c, _, _ := newTestCatalog(&domain.Book{Title: "Dune", Author: "Herbert", Available: false})

	if err := c.RemoveBook(context.Background(), "Dune"); err != nil {
		t.Fatalf("expected removal of checked-out book to succeed, got %v", err)
	}
}

func TestCatalog_RegisterUser(t *testing.T) {
	c, _, userRepo := newTestCatalog()

	for _, name := range []string{"alice", "bob", "alice"} {
		if err := c.RegisterUser(context.Background(), name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	users := c.ListUsers()
	if len(users) != 3 || users[2].Name != "alice" {
		t.Fatalf("expected duplicates kept in order, got %+v", users)
	}
	if len(userRepo.saves) != 3 || len(userRepo.saves[2]) != 3 {
		t.Fatalf("expected a full rewrite per registration, got %+v", userRepo.saves)
	}
}

func TestCatalog_FindBook_ExactCaseInsensitive(t *testing.T) {
	c, _, _ := newTestCatalog(domain.NewBook("The Hobbit", "Tolkien"))

	if _, err := c.FindBook("the hobbit"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if _, err := c.FindBook("hobbit"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected substring miss, got %v", err)
	}
}

func TestCatalog_ListBooks_IsSnapshot(t *testing.T) {
	c, _, _ := newTestCatalog(domain.NewBook("Dune", "Herbert"))

	books := c.ListBooks()
	books[0].Available = false

	found, _ := c.FindBook("Dune")
	if !found.Available {
		t.Error("mutating a snapshot must not affect the catalog")
	}
}

func TestCatalog_ListAvailable(t *testing.T) {
	c, _, _ := newTestCatalog(
		domain.NewBook("Dune", "Herbert"),
		&domain.Book{Title: "Emma", Author: "Austen", Available: false},
	)

	avail := c.ListAvailable()
	if len(avail) != 1 || avail[0].Title != "Dune" {
		t.Fatalf("unexpected: %+v", avail)
	}
}

func TestCatalog_CheckOut_RevertsOnSaveFailure(t *testing.T) {
	book := domain.NewBook("Dune", "Herbert")
	c, bookRepo, _ := newTestCatalog(book)
	bookRepo.saveErr = errors.New("read-only fs")

	if err := c.CheckOut(context.Background(), book); err == nil {
		t.Fatal("expected error")
	}
	if !book.Available {
		t.Error("expected availability restored after failed write")
	}
}

func TestNewCatalog_LoadError(t *testing.T) {
	_, err := NewCatalog(context.Background(), &stubBookRepo{loadErr: errors.New("boom")}, &stubUserRepo{}, discardLogger)
	if err == nil {
		t.Fatal("expected load error")
	}
}

func TestCatalog_GetBook_ReturnsCopy(t *testing.T) {
	dune := domain.NewBook("Dune", "Herbert")
	c, _, _ := newTestCatalog(dune)

	got, err := c.GetBook("dune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.Available = false
	if !dune.Available {
		t.Error("expected the catalog's book to be unaffected by the copy")
	}

	if _, err := c.GetBook("Dun"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}
