package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
	"github.com/bookdesk/library-catalog/internal/pkg/metrics"
)

var (
	_ ports.CatalogAdmin = (*Catalog)(nil)
	_ ports.BookFinder   = (*Catalog)(nil)
)

// Catalog is the authoritative registry of books and user names and the sole
// writer of their stores. Every mutation rewrites the affected store in full
// before the in-memory state is replaced.
type Catalog struct {
	mu       sync.RWMutex
	books    []*domain.Book
	users    []domain.User
	bookRepo ports.BookRepository
	userRepo ports.UserRepository
	logger   zerolog.Logger
	// onRemove runs after a removal is persisted, outside mu.
	onRemove []func(ctx context.Context, book *domain.Book) error
}

// NewCatalog loads both stores and returns the catalog built from them.
func NewCatalog(ctx context.Context, bookRepo ports.BookRepository, userRepo ports.UserRepository, logger zerolog.Logger) (*Catalog, error) {
	books, err := bookRepo.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	users, err := userRepo.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	c := &Catalog{
		books:    books,
		users:    users,
		bookRepo: bookRepo,
		userRepo: userRepo,
		logger:   logger,
	}
	c.observeStock()

	logger.Info().Int("books", len(books)).Int("users", len(users)).Msg("catalog loaded")
	return c, nil
}

// AddBook appends an available book. Duplicate titles are accepted.
func (c *Catalog) AddBook(ctx context.Context, title, author string) (*domain.Book, error) {
	if err := domain.ValidateField("title", title); err != nil {
		return nil, err
	}
	if err := domain.ValidateField("author", author); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	book := domain.NewBook(title, author)
	next := append(slices.Clone(c.books), book)
	if err := c.saveBooks(ctx, next); err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("add_book", "error").Inc()
		return nil, fmt.Errorf("add book: %w", err)
	}
	c.books = next
	c.observeStock()

	metrics.CatalogMutationsTotal.WithLabelValues("add_book", "ok").Inc()
	c.logger.Info().Str("title", title).Str("author", author).Msg("book added")
	return book, nil
}

// OnBookRemoved registers fn to run after every persisted removal.
func (c *Catalog) OnBookRemoved(fn func(ctx context.Context, book *domain.Book) error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onRemove = append(c.onRemove, fn)
}

// RemoveBook drops the first book matching title. Checked-out books are removed
// too; any ledger still holding one keeps an orphaned reference.
func (c *Catalog) RemoveBook(ctx context.Context, title string) error {
	book, hooks, err := c.removeBook(ctx, title)
	if err != nil {
		return err
	}

	for _, fn := range hooks {
		if err := fn(ctx, book); err != nil {
			return fmt.Errorf("remove book: %w", err)
		}
	}
	return nil
}

func (c *Catalog) removeBook(ctx context.Context, title string) (*domain.Book, []func(context.Context, *domain.Book) error, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	book, idx := domain.FindBook(c.books, title)
	if book == nil {
		metrics.CatalogMutationsTotal.WithLabelValues("remove_book", "not_found").Inc()
		return nil, nil, domain.ErrBookNotFound
	}

	next := slices.Delete(slices.Clone(c.books), idx, idx+1)
	if err := c.saveBooks(ctx, next); err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("remove_book", "error").Inc()
		return nil, nil, fmt.Errorf("remove book: %w", err)
	}
	c.books = next
	c.observeStock()

	if !book.Available {
		c.logger.Warn().Str("title", book.Title).Msg("removed a checked-out book, its loan is orphaned")
	}
	metrics.CatalogMutationsTotal.WithLabelValues("remove_book", "ok").Inc()
	c.logger.Info().Str("title", book.Title).Msg("book removed")
	return book, slices.Clone(c.onRemove), nil
}

// RegisterUser appends name to the user list. Duplicate names are accepted.
func (c *Catalog) RegisterUser(ctx context.Context, name string) error {
	if err := domain.ValidateField("name", name); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := append(slices.Clone(c.users), domain.User{Name: name})
	timer := prometheus.NewTimer(metrics.StoreWriteDuration.WithLabelValues("users"))
	err := c.userRepo.SaveUsers(ctx, next)
	timer.ObserveDuration()
	if err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("register_user", "error").Inc()
		return fmt.Errorf("register user: %w", err)
	}
	c.users = next

	metrics.CatalogMutationsTotal.WithLabelValues("register_user", "ok").Inc()
	c.logger.Info().Str("name", name).Msg("user registered")
	return nil
}

// FindBook returns the shared book whose title equals title, ignoring case.
func (c *Catalog) FindBook(title string) (*domain.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	book, _ := domain.FindBook(c.books, title)
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

// GetBook returns a snapshot of the book whose title equals title, ignoring case.
func (c *Catalog) GetBook(title string) (domain.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	book, _ := domain.FindBook(c.books, title)
	if book == nil {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return *book, nil
}

// ListBooks returns a snapshot of all books in insertion order.
func (c *Catalog) ListBooks() []domain.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Book, 0, len(c.books))
	for _, b := range c.books {
		out = append(out, *b)
	}
	return out
}

// ListAvailable returns a snapshot of the books that can be borrowed.
func (c *Catalog) ListAvailable() []domain.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Book, 0, len(c.books))
	for _, b := range c.books {
		if b.Available {
			out = append(out, *b)
		}
	}
	return out
}

// ListUsers returns a snapshot of registered users in registration order.
func (c *Catalog) ListUsers() []domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.users)
}

// CheckOut marks book as checked out and persists the book store.
func (c *Catalog) CheckOut(ctx context.Context, book *domain.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := book.CheckOut(); err != nil {
		return err
	}
	if err := c.saveBooks(ctx, c.books); err != nil {
		book.Available = true
		return fmt.Errorf("check out: %w", err)
	}
	c.observeStock()
	return nil
}

// CheckIn marks book as available and persists the book store.
func (c *Catalog) CheckIn(ctx context.Context, book *domain.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := book.CheckIn(); err != nil {
		return err
	}
	if err := c.saveBooks(ctx, c.books); err != nil {
		book.Available = false
		return fmt.Errorf("check in: %w", err)
	}
	c.observeStock()
	return nil
}

func (c *Catalog) saveBooks(ctx context.Context, books []*domain.Book) error {
	timer := prometheus.NewTimer(metrics.StoreWriteDuration.WithLabelValues("books"))
	defer timer.ObserveDuration()

	return c.bookRepo.SaveBooks(ctx, books)
}

// observeStock must be called with c.mu held.
func (c *Catalog) observeStock() {
	var available, out int
	for _, b := range c.books {
		if b.Available {
			available++
		} else {
			out++
		}
	}
	metrics.BooksInCatalog.WithLabelValues(string(domain.StatusAvailable)).Set(float64(available))
	metrics.BooksInCatalog.WithLabelValues(string(domain.StatusCheckedOut)).Set(float64(out))
}
