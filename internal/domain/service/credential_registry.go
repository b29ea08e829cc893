package service

// CredentialRegistry answers whether a user/key pair belongs to a configured principal.
// Implementations are immutable after construction and safe for concurrent use.
type CredentialRegistry interface {
	IsAuthorized(user, key string) bool
}
