package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"usersvc/internal/delivery/http/validator"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	mockUC "usersvc/internal/mocks/usecase"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserHandler_CreateUser_PassesInput(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: uc, Logger: newDiscardLogger()})

	uc.EXPECT().
		CreateUser(mock.Anything, &usecase.CreateUserInput{
			Username: "alice",
			Password: "pw",
			Provider: "github",
			Emails:   []string{"a@example.com"},
		}).
		Return(&entity.User{Username: "alice", Password: "hash", Provider: "github"}, nil)

	c, rec := newTestContext(http.MethodPost, "/create-user",
		`{"username":"alice","password":"pw","provider":"github","emails":["a@example.com"]}`)

	require.NoError(t, h.CreateUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
	assert.Contains(t, rec.Body.String(), `"photos":[]`)
}

func TestUserHandler_FindUser_UsesPathParam(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: uc, Logger: newDiscardLogger()})

	uc.EXPECT().FindUser(mock.Anything, "alice").Return(&entity.User{Username: "alice"}, nil)

	c, rec := newTestContext(http.MethodGet, "/find/alice", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, h.FindUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestUserHandler_UpdateUser_BodyCannotRenameUser(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: uc, Logger: newDiscardLogger()})

	uc.EXPECT().
		UpdateUser(mock.Anything, "alice", mock.AnythingOfType("*usecase.UpdateUserInput")).
		Return(&entity.User{Username: "alice"}, nil)

	c, _ := newTestContext(http.MethodPost, "/update-user/alice", `{"username":"mallory","givenName":"A"}`)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, h.UpdateUser(c))
}

func TestUserHandler_PropagatesUsecaseErrors(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: uc, Logger: newDiscardLogger()})

	uc.EXPECT().ListUsers(mock.Anything).Return(nil, errors.New("store down"))

	c, _ := newTestContext(http.MethodGet, "/list", "")

	err := h.ListUsers(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}

func TestUserHandler_ListUsers_EmptyArray(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: uc, Logger: newDiscardLogger()})

	uc.EXPECT().ListUsers(mock.Anything).Return([]*entity.User{}, nil)

	c, rec := newTestContext(http.MethodGet, "/list", "")

	require.NoError(t, h.ListUsers(c))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUserHandler_CreateUser_ValidationError(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: uc, Logger: newDiscardLogger()})

	c, _ := newTestContext(http.MethodPost, "/create-user", `{"password":"pw"}`)

	err := h.CreateUser(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Username failed required", appErr.Details())
}

func TestPasswordHandler_PasswordCheck(t *testing.T) {
	uc := mockUC.NewMockPasswordCheckUsecase(t)
	h := NewPasswordHandler(PasswordHandlerParams{PasswordCheckUC: uc, Logger: newDiscardLogger()})

	uc.EXPECT().
		PasswordCheck(mock.Anything, &usecase.PasswordCheckInput{Username: "alice", Password: "pw"}).
		Return(&entity.VerificationOutcome{Check: false, Username: "alice", Message: entity.MessageIncorrectPassword}, nil)

	c, rec := newTestContext(http.MethodPost, "/password-check", `{"username":"alice","password":"pw"}`)

	require.NoError(t, h.PasswordCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"check":false,"username":"alice","message":"Incorrect username or password"}`, rec.Body.String())
}
