package domain

import (
	"fmt"
	"strings"
)

// BookStatus represents the lending state of a book.
type BookStatus string

const (
	StatusAvailable  BookStatus = "available"
	StatusCheckedOut BookStatus = "checked_out"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[BookStatus][]BookStatus{
	StatusAvailable:  {StatusCheckedOut},
	StatusCheckedOut: {StatusAvailable},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s BookStatus) CanTransitionTo(next BookStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Book is a catalog entry. Its identity is the title, compared case-insensitively,
// so two books sharing a title cannot be told apart by lookups.
type Book struct {
	Title     string `json:"title" bson:"title"`
	Author    string `json:"author" bson:"author"`
	Available bool   `json:"available" bson:"available"`
}

// NewBook returns an available book.
func NewBook(title, author string) *Book {
	return &Book{Title: title, Author: author, Available: true}
}

// Status derives the lending state from the availability flag.
func (b *Book) Status() BookStatus {
	if b.Available {
		return StatusAvailable
	}
	return StatusCheckedOut
}

// Matches reports whether title names this book (exact, case-insensitive).
func (b *Book) Matches(title string) bool {
	return strings.EqualFold(b.Title, title)
}

// CheckOut moves the book to checked_out.
func (b *Book) CheckOut() error {
	if !b.Status().CanTransitionTo(StatusCheckedOut) {
		return fmt.Errorf("%w: %q", ErrAlreadyCheckedOut, b.Title)
	}
	b.Available = false
	return nil
}

// CheckIn moves the book back to available.
func (b *Book) CheckIn() error {
	if !b.Status().CanTransitionTo(StatusAvailable) {
		return fmt.Errorf("%w: %q is not checked out", ErrInvalidState, b.Title)
	}
	b.Available = true
	return nil
}

func (b *Book) String() string {
	state := "Available"
	if !b.Available {
		state = "Checked Out"
	}
	return fmt.Sprintf("%s by %s - %s", b.Title, b.Author, state)
}

// FindBook returns the first book in books matching title.
func FindBook(books []*Book, title string) (*Book, int) {
	for i, b := range books {
		if b.Matches(title) {
			return b, i
		}
	}
	return nil, -1
}
