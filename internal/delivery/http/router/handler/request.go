package handler

import (
	"slices"
	"strings"

	"usersvc/internal/delivery/http/validator"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/errors"

	"github.com/labstack/echo/v4"
)

// bindAndValidate binds every parameter source into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request parameters")
	}
	if err := c.Validate(req); err != nil {
		if fields := validator.FieldErrors(err); len(fields) > 0 {
			return domainerrors.ErrValidationFailed.WithDetails(formatFieldErrors(fields))
		}

		return errors.Wrap(err, "failed to validate request")
	}

	return nil
}

func formatFieldErrors(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, tag := range fields {
		parts = append(parts, field+" failed "+tag)
	}
	slices.Sort(parts)

	return strings.Join(parts, "; ")
}
