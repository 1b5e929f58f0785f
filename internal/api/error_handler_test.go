package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookdesk/library-catalog/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrBookNotFound, http.StatusNotFound},
		{fmt.Errorf("add book: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrAlreadyCheckedOut, http.StatusConflict},
		{domain.ErrNotBorrowed, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{echo.NewHTTPError(http.StatusForbidden, "forbidden"), http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		h(tc.err, c)
		if rec.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}
