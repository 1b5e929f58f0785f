package cli

import (
	"context"
	"errors"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

func (c *Console) runLibrarian(ctx context.Context) error {
	name, err := c.prompt("Enter librarian name:")
	if err != nil {
		return err
	}
	c.logger.Info().Str("librarian", name).Msg("librarian session started")

	for {
		c.println("Available actions for librarians:")
		c.println("1. Add a new book")
		c.println("2. Remove a book")
		c.println("3. Register a new user")
		c.println("4. List all users")
		c.println("5. List all books")
		c.println("Type 'exit' to go back to the main menu.")

		action, err := c.readChoice()
		if err != nil {
			return err
		}

		switch {
		case action == "1":
			err = c.addBook(ctx)
		case action == "2":
			err = c.removeBook(ctx)
		case action == "3":
			err = c.registerUser(ctx)
		case action == "4":
			c.printUsers(c.catalog.ListUsers())
		case action == "5":
			c.printBooks(c.catalog.ListBooks())
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

func (c *Console) addBook(ctx context.Context) error {
	title, err := c.prompt("Enter book title:")
	if err != nil {
		return err
	}
	author, err := c.prompt("Enter book author:")
	if err != nil {
		return err
	}

	if _, err := c.catalog.AddBook(ctx, title, author); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.println(err.Error())
			return nil
		}
		return err
	}
	c.println("Book added.")
	return nil
}

func (c *Console) removeBook(ctx context.Context) error {
	title, err := c.prompt("Enter the title of the book to remove:")
	if err != nil {
		return err
	}

	switch err := c.catalog.RemoveBook(ctx, title); {
	case err == nil:
		c.println("Book removed.")
	case errors.Is(err, domain.ErrNotFound):
		c.println("Book not found.")
	default:
		return err
	}
	return nil
}

func (c *Console) registerUser(ctx context.Context) error {
	name, err := c.prompt("Enter new user name:")
	if err != nil {
		return err
	}

	if err := c.catalog.RegisterUser(ctx, name); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.println(err.Error())
			return nil
		}
		return err
	}
	c.println("User registered.")
	return nil
}

func (c *Console) printUsers(users []domain.User) {
	c.println("Registered users:")
	for _, u := range users {
		c.println(u.Name)
	}
}
