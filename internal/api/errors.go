package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/example/bookstore-gateway/internal/auth"
	"github.com/example/bookstore-gateway/internal/domain/stock"
	"github.com/example/bookstore-gateway/internal/domain/users"
)

// statusForError is the single place error kinds become HTTP statuses.
// Bus and downstream failures are uniformly 500; business absence is
// 404, not the 400 a generic catch-all would produce.
func statusForError(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest

	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, users.ErrNoNewUsers),
		errors.Is(err, stock.ErrBookStockNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
