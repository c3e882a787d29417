package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
)

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, model.Response{
		StatusCode:    code,
		StatusMessage: http.StatusText(code),
		Response:      data,
	})
}

// respondErr maps a domain error kind to its HTTP status and renders the
// envelope: 401 auth, 400 validation/conflict/create, 404 not-found kinds,
// 500 for anything unmapped.
func respondErr(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrAuthFailed),
		errors.Is(err, errs.ErrTokenExpired),
		errors.Is(err, errs.ErrSignatureInvalid):
		code = http.StatusUnauthorized
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrUserConflict),
		errors.Is(err, errs.ErrBookCreate):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrInventoryNotFound),
		errors.Is(err, errs.ErrBookstoreNotFound),
		errors.Is(err, errs.ErrUserNotFound):
		code = http.StatusNotFound
	}
	return c.JSON(code, model.Response{
		StatusCode:    code,
		StatusMessage: err.Error(),
	})
}
