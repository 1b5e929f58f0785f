package domain

import (
	"errors"
	"testing"
)

func TestBookStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookStatus
		want     bool
	}{
		{StatusAvailable, StatusCheckedOut, true},
		{StatusCheckedOut, StatusAvailable, true},
		{StatusAvailable, StatusAvailable, false},
		{StatusCheckedOut, StatusCheckedOut, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestBook_CheckOutAndIn(t *testing.T) {
	b := NewBook("Dune", "Herbert")

	if err := b.CheckOut(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Available {
		t.Fatal("expected book to be checked out")
	}
	if err := b.CheckOut(); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("expected ErrAlreadyCheckedOut, got %v", err)
	}
	if err := b.CheckIn(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.CheckIn(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestBook_Matches(t *testing.T) {
	b := NewBook("The Hobbit", "Tolkien")

	if !b.Matches("the hobbit") {
		t.Error("expected case-insensitive match")
	}
	if b.Matches("hobbit") {
		t.Error("substring must not match")
	}
}

func TestBook_String(t *testing.T) {
	b := NewBook("Dune", "Herbert")
	if got := b.String(); got != "Dune by Herbert - Available" {
		t.Errorf("unexpected: %q", got)
	}
	b.Available = false
	if got := b.String(); got != "Dune by Herbert - Checked Out" {
		t.Errorf("unexpected: %q", got)
	}
}

func TestErrors_Taxonomy(t *testing.T) {
	if !errors.Is(ErrBookNotFound, ErrNotFound) {
		t.Error("ErrBookNotFound should wrap ErrNotFound")
	}
	if !errors.Is(ErrAlreadyCheckedOut, ErrInvalidState) || !errors.Is(ErrNotBorrowed, ErrInvalidState) {
		t.Error("lending errors should wrap ErrInvalidState")
	}
}

func TestValidateField(t *testing.T) {
	if err := ValidateField("title", "Dune"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"a|b", "line\nbreak", "cr\r"} {
		if err := ValidateField("title", bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
