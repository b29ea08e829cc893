// Package middleware contains the echo middleware specific to the user service HTTP API.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"usersvc/config"
	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/errors"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

// GateMiddlewareParams holds dependencies for GateMiddleware, injected by Fx.
type GateMiddlewareParams struct {
	fx.In

	Gate   usecase.GateUsecase
	Config *config.Config
	Logger *slog.Logger
}

// GateMiddleware admits only requests presenting a registered API principal.
type GateMiddleware struct {
	gate          usecase.GateUsecase
	missingStatus int
	logger        *slog.Logger
}

// NewGateMiddleware is the constructor for GateMiddleware.
func NewGateMiddleware(params GateMiddlewareParams) *GateMiddleware {
	missingStatus := http.StatusInternalServerError
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MissingCredentialsStatus != 0 {
		missingStatus = params.Config.Auth.MissingCredentialsStatus
	}

	return &GateMiddleware{
		gate:          params.Gate,
		missingStatus: missingStatus,
		logger:        params.Logger,
	}
}

// Authenticate runs the gate before any handler. A rejected request never reaches next.
func (m *GateMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := ExtractAuthorization(c.Request())

		decision := m.gate.Authorize(header)
		switch decision.Verdict() {
		case usecase.VerdictAllow:
			deliverycontext.SetPrincipal(c, header.Username)
			slogecho.AddCustomAttributes(c, slog.String("principal", header.Username))

			return next(c)
		default:
			reason := decision.Reason()
			if errors.Is(reason, domainerrors.ErrAuthMissing) {
				return reason.WithHTTPCode(m.missingStatus)
			}

			return reason
		}
	}
}

// ExtractAuthorization parses the Authorization header of r.
// It returns nil when the header is absent. A Basic header that does not
// decode keeps the Basic scheme with an empty pair.
func ExtractAuthorization(r *http.Request) *entity.AuthorizationHeader {
	raw := r.Header.Get(echo.HeaderAuthorization)
	if raw == "" {
		return nil
	}

	scheme, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	if !strings.EqualFold(scheme, entity.SchemeBasic) {
		return &entity.AuthorizationHeader{Scheme: scheme}
	}

	header := &entity.AuthorizationHeader{Scheme: entity.SchemeBasic}
	if username, password, ok := r.BasicAuth(); ok {
		header.Username = username
		header.Password = password
	}

	return header
}
