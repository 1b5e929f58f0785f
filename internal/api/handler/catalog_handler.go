package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/bookdesk/library-catalog/internal/core/domain"
	"github.com/bookdesk/library-catalog/internal/core/ports"
)

// CatalogReader is the read-only view of the catalog served over HTTP.
type CatalogReader interface {
	ports.BookFinder
	ListUsers() []domain.User
}

type CatalogHandler struct {
	catalog CatalogReader
}

func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type bookResponse struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
	Status    string `json:"status"`
}

type userResponse struct {
	Name string `json:"name"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		Title:     b.Title,
		Author:    b.Author,
		Available: b.Available,
		Status:    string(b.Status()),
	}
}

func toBookResponses(books []domain.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	return out
}

// ListBooks returns every book in insertion order.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}  bookResponse
// @Router       /books [get]
func (h *CatalogHandler) ListBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, toBookResponses(h.catalog.ListBooks()))
}

// ListAvailable returns the books that can currently be borrowed.
//
// @Summary      List available books
// @Tags         books
// @Produce      json
// @Success      200  {array}  bookResponse
// @Router       /books/available [get]
func (h *CatalogHandler) ListAvailable(c echo.Context) error {
	return c.JSON(http.StatusOK, toBookResponses(h.catalog.ListAvailable()))
}

// GetBook looks a book up by exact title, ignoring case.
//
// @Summary      Find a book
// @Tags         books
// @Produce      json
// @Param        title  path      string  true  "Book title"
// @Success      200    {object}  bookResponse
// @Failure      404    {object}  map[string]string
// @Router       /books/{title} [get]
func (h *CatalogHandler) GetBook(c echo.Context) error {
	title, err := url.PathUnescape(c.Param("title"))
	if err != nil {
		title = c.Param("title")
	}

	book, err := h.catalog.GetBook(title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(&book))
}

// ListUsers returns registered user names. Librarian only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *CatalogHandler) ListUsers(c echo.Context) error {
	users := h.catalog.ListUsers()
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{Name: u.Name})
	}
	return c.JSON(http.StatusOK, out)
}
