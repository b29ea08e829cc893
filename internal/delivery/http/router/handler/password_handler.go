package handler

import (
	"log/slog"

	"usersvc/internal/delivery/http/response"
	"usersvc/internal/errors"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PasswordHandlerParams holds dependencies for PasswordHandler, injected by Fx.
type PasswordHandlerParams struct {
	fx.In

	PasswordCheckUC usecase.PasswordCheckUsecase
	Logger          *slog.Logger
}

// PasswordHandler serves the password-check route.
type PasswordHandler struct {
	passwordCheckUC usecase.PasswordCheckUsecase
	logger          *slog.Logger
}

// NewPasswordHandler is the constructor for PasswordHandler.
func NewPasswordHandler(params PasswordHandlerParams) *PasswordHandler {
	return &PasswordHandler{
		passwordCheckUC: params.PasswordCheckUC,
		logger:          params.Logger,
	}
}

// PasswordCheckRequest carries the username/password pair to verify.
// Neither field is required: an empty username is simply not found.
type PasswordCheckRequest struct {
	Username string `json:"username" form:"username" query:"username"`
	Password string `json:"password" form:"password" query:"password"`
}

// PasswordCheck handles POST /password-check. All three outcomes answer 200.
func (h *PasswordHandler) PasswordCheck(c echo.Context) error {
	var req PasswordCheckRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	outcome, err := h.passwordCheckUC.PasswordCheck(c.Request().Context(), &usecase.PasswordCheckInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, outcome)
}
