// Package handler contains the HTTP handlers for the user service.
package handler

import (
	"log/slog"

	"usersvc/internal/delivery/http/response"
	"usersvc/internal/domain/entity"
	"usersvc/internal/errors"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// CreateUserRequest carries the parameters of /create-user and /find-or-create.
type CreateUserRequest struct {
	Username   string   `json:"username" form:"username" query:"username" validate:"required,max=255"`
	Password   string   `json:"password" form:"password" query:"password" validate:"required"`
	Provider   string   `json:"provider" form:"provider" query:"provider" validate:"max=64"`
	FamilyName string   `json:"familyName" form:"familyName" query:"familyName"`
	GivenName  string   `json:"givenName" form:"givenName" query:"givenName"`
	MiddleName string   `json:"middleName" form:"middleName" query:"middleName"`
	Emails     []string `json:"emails" form:"emails" query:"emails" validate:"omitempty,dive,email"`
	Photos     []string `json:"photos" form:"photos" query:"photos"`
}

// UpdateUserRequest carries the parameters of /update-user/:username.
// An empty password leaves the stored hash unchanged.
type UpdateUserRequest struct {
	Username   string   `param:"username" json:"-" validate:"required"`
	Password   string   `json:"password" form:"password" query:"password"`
	Provider   string   `json:"provider" form:"provider" query:"provider" validate:"max=64"`
	FamilyName string   `json:"familyName" form:"familyName" query:"familyName"`
	GivenName  string   `json:"givenName" form:"givenName" query:"givenName"`
	MiddleName string   `json:"middleName" form:"middleName" query:"middleName"`
	Emails     []string `json:"emails" form:"emails" query:"emails" validate:"omitempty,dive,email"`
	Photos     []string `json:"photos" form:"photos" query:"photos"`
}

// UsernameRequest carries a username path parameter.
type UsernameRequest struct {
	Username string `param:"username" json:"-" validate:"required"`
}

func (r *CreateUserRequest) toInput() *usecase.CreateUserInput {
	return &usecase.CreateUserInput{
		Username:   r.Username,
		Password:   r.Password,
		Provider:   r.Provider,
		FamilyName: r.FamilyName,
		GivenName:  r.GivenName,
		MiddleName: r.MiddleName,
		Emails:     r.Emails,
		Photos:     r.Photos,
	}
}

// CreateUser handles POST /create-user.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user.Sanitized())
}

// FindOrCreate handles POST /find-or-create.
func (h *UserHandler) FindOrCreate(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.FindOrCreate(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user.Sanitized())
}

// FindUser handles GET /find/:username.
func (h *UserHandler) FindUser(c echo.Context) error {
	var req UsernameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.FindUser(c.Request().Context(), req.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user.Sanitized())
}

// ListUsers handles GET /list.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*entity.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.Sanitized())
	}

	return response.OK(c, views)
}

// UpdateUser handles POST /update-user/:username.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), req.Username, &usecase.UpdateUserInput{
		Password:   req.Password,
		Provider:   req.Provider,
		FamilyName: req.FamilyName,
		GivenName:  req.GivenName,
		MiddleName: req.MiddleName,
		Emails:     req.Emails,
		Photos:     req.Photos,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user.Sanitized())
}

// DestroyUser handles DELETE /destroy/:username.
func (h *UserHandler) DestroyUser(c echo.Context) error {
	var req UsernameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userUC.DestroyUser(c.Request().Context(), req.Username); err != nil {
		return errors.WithStack(err)
	}

	return response.Empty(c)
}
