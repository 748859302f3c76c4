package domain

import "encoding/json"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// AuthResponse is returned by login and register. The API answers either
// {token, user:{...}} or the flat {token, id, name, email, role}; both
// decode into the same value.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type flatUser User

func (r *AuthResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Token  string `json:"token"`
		Nested *User  `json:"user"`
		flatUser
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Token = raw.Token
	r.User = raw.Nested
	if r.User == nil && (raw.ID != 0 || raw.Email != "") {
		flat := User(raw.flatUser)
		r.User = &flat
	}
	return nil
}

// LoginResult is what a login attempt hands back to the auth screen.
// Failures are reported through Error rather than a Go error.
type LoginResult struct {
	Success bool
	User    *User
	Error   string
}
