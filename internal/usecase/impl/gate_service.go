package impl

import (
	"log/slog"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/service"
	"usersvc/internal/infra/metrics"
	"usersvc/internal/usecase"

	"go.uber.org/fx"
)

// gateService implements the GateUsecase interface.
type gateService struct {
	registry service.CredentialRegistry
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// GateServiceParams holds dependencies for the gate, injected by Fx.
type GateServiceParams struct {
	fx.In

	Registry service.CredentialRegistry
	Metrics  *metrics.Metrics `optional:"true"`
	Logger   *slog.Logger
}

// NewGateService is the constructor for gateService.
func NewGateService(params GateServiceParams) usecase.GateUsecase {
	return &gateService{
		registry: params.Registry,
		metrics:  params.Metrics,
		logger:   params.Logger,
	}
}

// Authorize decides whether a request may proceed based on its credential presentation.
func (srv *gateService) Authorize(header *entity.AuthorizationHeader) usecase.Decision {
	if !header.HasBasicCredentials() {
		srv.metrics.RecordGateDecision(metrics.DecisionMissing)

		return usecase.Reject(domainerrors.ErrAuthMissing)
	}

	if !srv.registry.IsAuthorized(header.Username, header.Password) {
		srv.metrics.RecordGateDecision(metrics.DecisionRejected)
		srv.logger.Debug("Gate rejected credentials", slog.String("user", header.Username))

		return usecase.Reject(domainerrors.ErrAuthRejected)
	}

	srv.metrics.RecordGateDecision(metrics.DecisionAllow)

	return usecase.Allow()
}
