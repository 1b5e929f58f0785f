package flatfile

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

// BookRepository reads and writes lines of the form title|author|True.
type BookRepository struct {
	path   string
	logger zerolog.Logger
}

func NewBookRepository(path string, logger zerolog.Logger) *BookRepository {
	return &BookRepository{path: path, logger: logger}
}

// LoadBooks skips lines that do not have exactly three fields or whose
// availability is not a boolean.
func (r *BookRepository) LoadBooks(_ context.Context) ([]*domain.Book, error) {
	lines, err := readLines(r.path)
	if err != nil {
		return nil, err
	}

	books := make([]*domain.Book, 0, len(lines))
	for n, line := range lines {
		book, ok := parseBook(line)
		if !ok {
			r.logger.Debug().Str("file", r.path).Int("line", n+1).Msg("skipping malformed book line")
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

func (r *BookRepository) SaveBooks(_ context.Context, books []*domain.Book) error {
	lines := make([]string, 0, len(books))
	for _, b := range books {
		lines = append(lines, strings.Join([]string{b.Title, b.Author, formatBool(b.Available)}, separator))
	}
	return writeLines(r.path, lines)
}

func parseBook(line string) (*domain.Book, bool) {
	parts := strings.Split(line, separator)
	if len(parts) != 3 {
		return nil, false
	}
	available, ok := parseBool(parts[2])
	if !ok {
		return nil, false
	}
	return &domain.Book{Title: parts[0], Author: parts[1], Available: available}, true
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// parseBool accepts "true" and "false" in any letter case, ignoring
// surrounding blanks. Forms such as "1" or "t" are rejected.
func parseBool(s string) (bool, bool) {
	switch s = strings.TrimSpace(s); {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	default:
		return false, false
	}
}
