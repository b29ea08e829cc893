package usecase

import (
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
)

// Verdict is the kind of a gate Decision.
type Verdict int

const (
	// VerdictAllow lets the request through to route logic.
	VerdictAllow Verdict = iota + 1
	// VerdictReject stops the request before any route logic runs.
	VerdictReject
)

// Decision is the outcome of the request gate: Allow, or Reject with a reason.
// The zero Decision is a rejection without a reason, so an unset value never lets a request through.
type Decision struct {
	verdict Verdict
	reason  *domainerrors.BaseError
}

// Allow returns the decision that admits a request.
func Allow() Decision {
	return Decision{verdict: VerdictAllow}
}

// Reject returns the decision that stops a request for the given reason.
func Reject(reason *domainerrors.BaseError) Decision {
	return Decision{verdict: VerdictReject, reason: reason}
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.verdict == VerdictAllow
}

// Verdict returns the decision kind.
func (d Decision) Verdict() Verdict {
	return d.verdict
}

// Reason returns why the request was rejected, or nil for Allow.
// A zero Decision reports ErrAuthMissing.
func (d Decision) Reason() *domainerrors.BaseError {
	if d.Allowed() {
		return nil
	}
	if d.reason == nil {
		return domainerrors.ErrAuthMissing
	}

	return d.reason
}

// GateUsecase authorizes inbound requests against the configured principals.
// Authorize is pure and cheap; it never blocks on I/O.
type GateUsecase interface {
	Authorize(header *entity.AuthorizationHeader) Decision
}
