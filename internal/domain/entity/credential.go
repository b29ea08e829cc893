package entity

// SchemeBasic is the only authorization scheme the gate accepts.
const SchemeBasic = "Basic"

// Principal is a statically configured API caller.
// Principals are loaded once at start and never change afterwards.
type Principal struct {
	User string
	Key  string
}

// AuthorizationHeader is the parsed credential presentation of a single request.
type AuthorizationHeader struct {
	Scheme   string
	Username string
	Password string
}

// HasBasicCredentials reports whether the header carries a usable Basic credential pair.
func (h *AuthorizationHeader) HasBasicCredentials() bool {
	if h == nil {
		return false
	}

	return h.Scheme == SchemeBasic && (h.Username != "" || h.Password != "")
}

// VerificationOutcome is the result of a password check.
// It never carries the stored hash or the submitted password.
type VerificationOutcome struct {
	Check    bool   `json:"check"`
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

// Outcome messages returned by the password check.
const (
	MessageUserNotFound      = "Could not find user"
	MessageIncorrectPassword = "Incorrect username or password"
)
