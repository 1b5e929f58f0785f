// Package cli implements the interactive console: role selection followed by
// the user or librarian command loop.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

const (
	roleUser      = "1"
	roleLibrarian = "2"
	exitCommand   = "exit"

	// maxLineBytes caps one answer. Longer lines are discarded.
	maxLineBytes = 4096
)

var (
	// errInputClosed ends the session when stdin reaches EOF.
	errInputClosed = errors.New("input closed")
	errLineTooLong = fmt.Errorf("%w: line longer than %d bytes", domain.ErrInvalidInput, maxLineBytes)
)

// Catalog is what the console needs from the catalog store.
type Catalog interface {
	ports.CatalogAdmin
	FindBook(title string) (*domain.Book, error)
}

// LedgerFunc returns the lending view of the named user.
type LedgerFunc func(user string) ports.Borrower

// Console drives one interactive session over in and out.
type Console struct {
	in        *bufio.Reader
	out       io.Writer
	catalog   Catalog
	newLedger LedgerFunc
	logger    zerolog.Logger
}

func NewConsole(in io.Reader, out io.Writer, catalog Catalog, newLedger LedgerFunc, logger zerolog.Logger) *Console {
	return &Console{
		in:        bufio.NewReader(in),
		out:       out,
		catalog:   catalog,
		newLedger: newLedger,
		logger:    logger,
	}
}

// Run loops over role sessions until the operator declines to start again or
// input ends. Only persistence failures are returned; lookup misses, rejected
// borrows/returns and unknown choices are reported and re-prompted.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println("Choose a role: 1. User 2. Librarian")
		role, err := c.readChoice()
		if err != nil {
			return c.finish(err)
		}

		switch role {
		case roleUser:
			err = c.runUser(ctx)
		case roleLibrarian:
			err = c.runLibrarian(ctx)
		default:
			c.invalidInput(role)
			continue
		}
		if err != nil {
			return c.finish(err)
		}

		c.println("Start again? (y/n)")
		answer, err := c.readChoice()
		if err != nil {
			return c.finish(err)
		}
		if !strings.EqualFold(answer, "y") {
			return nil
		}
	}
}

func (c *Console) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		c.logger.Debug().Msg("input closed, ending session")
		return nil
	}
	return err
}

// readLine returns the next line without its terminator. Oversized lines are
// reported and skipped so the pending question is answered by the next line.
func (c *Console) readLine() (string, error) {
	for {
		line, err := c.readRawLine()
		if errors.Is(err, errLineTooLong) {
			c.logger.Debug().Err(err).Msg("discarding oversized input line")
			c.println("Input too long. Try again.")
			continue
		}
		return line, err
	}
}

func (c *Console) readRawLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := c.in.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineBytes+2 {
				tooLong, buf = true, nil
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(buf) == 0 && !tooLong {
				return "", errInputClosed
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		break
	}

	if tooLong {
		return "", errLineTooLong
	}
	line := strings.TrimSuffix(string(buf), "\n")
	line = strings.TrimSuffix(line, "\r")
	if len(line) > maxLineBytes {
		return "", errLineTooLong
	}
	return line, nil
}

// readChoice reads a menu answer; surrounding blanks are ignored.
func (c *Console) readChoice() (string, error) {
	line, err := c.readLine()
	return strings.TrimSpace(line), err
}

// prompt prints question and reads the answer verbatim.
func (c *Console) prompt(question string) (string, error) {
	c.println(question)
	return c.readLine()
}

func (c *Console) invalidInput(choice string) {
	c.logger.Debug().Err(domain.ErrInvalidInput).Str("choice", choice).Msg("unrecognised menu choice")
	c.println("Invalid input. Try again.")
}

func (c *Console) printBooks(books []domain.Book) {
	c.println("All books in the library:")
	if len(books) == 0 {
		c.println("The catalog is empty.")
		return
	}
	for i := range books {
		c.println(books[i].String())
	}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func isExit(choice string) bool {
	return strings.EqualFold(choice, exitCommand)
}
