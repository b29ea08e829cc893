package auth

import (
	"crypto/subtle"

	"usersvc/config"
	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/service"
	"usersvc/internal/errors"
)

// credentialRegistry holds the static principal list.
// It is never mutated after construction, so concurrent readers need no lock.
type credentialRegistry struct {
	principals []entity.Principal
}

// NewCredentialRegistry builds the registry from auth.principals.
func NewCredentialRegistry(cfg *config.Config) (service.CredentialRegistry, error) {
	var entries []config.PrincipalConfig
	if cfg != nil && cfg.Auth != nil {
		entries = cfg.Auth.Principals
	}

	principals := make([]entity.Principal, 0, len(entries))
	for _, entry := range entries {
		principals = append(principals, entity.Principal{User: entry.User, Key: entry.Key})
	}

	return NewStaticCredentialRegistry(principals...)
}

// NewStaticCredentialRegistry builds a registry from an explicit principal list.
// Duplicate pairs are collapsed; entries with an empty user or key are rejected.
func NewStaticCredentialRegistry(principals ...entity.Principal) (service.CredentialRegistry, error) {
	seen := make(map[entity.Principal]struct{}, len(principals))
	unique := make([]entity.Principal, 0, len(principals))

	for i, p := range principals {
		if p.User == "" || p.Key == "" {
			return nil, errors.Errorf("principal %d: user and key must both be set", i)
		}
		if _, dup := seen[p]; dup {
			continue
		}

		seen[p] = struct{}{}
		unique = append(unique, p)
	}

	return &credentialRegistry{principals: unique}, nil
}

// IsAuthorized reports whether user and key exactly match a configured principal.
func (r *credentialRegistry) IsAuthorized(user, key string) bool {
	for _, p := range r.principals {
		userMatch := subtle.ConstantTimeCompare([]byte(p.User), []byte(user))
		keyMatch := subtle.ConstantTimeCompare([]byte(p.Key), []byte(key))
		if userMatch&keyMatch == 1 {
			return true
		}
	}

	return false
}
