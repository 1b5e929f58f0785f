package cli

import (
	"context"
	"errors"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

func (c *Console) runUser(ctx context.Context) error {
	name, err := c.askUserName()
	if err != nil {
		return err
	}
	ledger := c.newLedger(name)
	c.logger.Info().Str("user", name).Msg("user session started")

	for {
		c.println("Available actions for users:")
		c.println("1. List books")
		c.println("2. Borrow a book")
		c.println("3. Return a book")
		c.println("4. List my borrowed books")
		c.println("Type 'exit' to go back to the main menu.")

		action, err := c.readChoice()
		if err != nil {
			return err
		}

		switch {
		case action == "1":
			c.printBooks(c.catalog.ListBooks())
		case action == "2":
			err = c.borrow(ctx, ledger)
		case action == "3":
			err = c.giveBack(ctx, ledger)
		case action == "4":
			c.printBorrowed(name, ledger.ListBorrowed())
		case isExit(action):
			return nil
		default:
			c.invalidInput(action)
		}
		if err != nil {
			return err
		}
	}
}

// askUserName re-prompts until the name can be stored in the loan store.
func (c *Console) askUserName() (string, error) {
	for {
		name, err := c.prompt("Enter your name:")
		if err != nil {
			return "", err
		}
		if err := domain.ValidateField("name", name); err != nil {
			c.println(err.Error())
			continue
		}
		return name, nil
	}
}

func (c *Console) borrow(ctx context.Context, ledger ports.Borrower) error {
	title, err := c.prompt("Enter the title of the book to borrow:")
	if err != nil {
		return err
	}

	book, err := c.catalog.FindBook(title)
	if errors.Is(err, domain.ErrNotFound) {
		c.println("Book not found.")
		return nil
	}
	if err != nil {
		return err
	}

	switch err := ledger.Borrow(ctx, book); {
	case err == nil:
		c.printf("You borrowed: %s\n", book.Title)
	case errors.Is(err, domain.ErrInvalidState):
		c.printf("Book '%s' is already checked out.\n", book.Title)
	case errors.Is(err, domain.ErrInvalidInput):
		c.println(err.Error())
	default:
		return err
	}
	return nil
}

func (c *Console) giveBack(ctx context.Context, ledger ports.Borrower) error {
	title, err := c.prompt("Enter the title of the book to return:")
	if err != nil {
		return err
	}

	book, err := ledger.FindBorrowed(title)
	if errors.Is(err, domain.ErrNotFound) {
		c.println("Book not found in your list.")
		return nil
	}
	if err != nil {
		return err
	}

	switch err := ledger.Return(ctx, book); {
	case err == nil:
		c.printf("You returned: %s\n", book.Title)
	case errors.Is(err, domain.ErrInvalidState):
		c.println("This book was not borrowed by you.")
	default:
		return err
	}
	return nil
}

func (c *Console) printBorrowed(name string, books []domain.Book) {
	c.printf("%s, your books:\n", name)
	if len(books) == 0 {
		c.println("You have no borrowed books.")
		return
	}
	for i := range books {
		c.println(books[i].String())
	}
}
