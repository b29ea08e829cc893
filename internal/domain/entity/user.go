// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record owned by the user store.
// Password always holds a bcrypt hash once the record has been created.
type User struct {
	ID         uuid.UUID // Surrogate key assigned by the store.
	Username   string    // Unique login name, the natural key for every lookup.
	Password   string    // bcrypt hash of the account password.
	Provider   string    // Where the account came from, e.g. "local" or an OAuth provider name.
	FamilyName string
	GivenName  string
	MiddleName string
	Emails     []string
	Photos     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserView is the sanitized projection of a User that is safe to return to callers.
type UserView struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Provider   string    `json:"provider"`
	FamilyName string    `json:"familyName"`
	GivenName  string    `json:"givenName"`
	MiddleName string    `json:"middleName"`
	Emails     []string  `json:"emails"`
	Photos     []string  `json:"photos"`
}

// Sanitized strips the password hash from the user.
func (u *User) Sanitized() *UserView {
	if u == nil {
		return nil
	}

	emails := u.Emails
	if emails == nil {
		emails = []string{}
	}
	photos := u.Photos
	if photos == nil {
		photos = []string{}
	}

	return &UserView{
		ID:         u.ID,
		Username:   u.Username,
		Provider:   u.Provider,
		FamilyName: u.FamilyName,
		GivenName:  u.GivenName,
		MiddleName: u.MiddleName,
		Emails:     emails,
		Photos:     photos,
	}
}
