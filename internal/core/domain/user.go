package domain

// Role is the account role as reported by the dashboard API.
type Role string

const (
	RoleCustomer  Role = "CUSTOMER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// Valid reports whether r is one of the roles the API accepts.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// UserStatus is the activation state of an account.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// User models an account managed through the dashboard. The same shape is
// used for the signed-in operator held by the session.
type User struct {
	ID     int64      `json:"id,omitempty"`
	Name   string     `json:"name,omitempty"`
	Email  string     `json:"email"`
	Role   Role       `json:"role,omitempty"`
	Status UserStatus `json:"status,omitempty"`
}

// UserInput is the body accepted by user create and update calls.
type UserInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password,omitempty"`
	Role     Role       `json:"role,omitempty"`
	Status   UserStatus `json:"status,omitempty"`
}

// DisplayName is what the sidebar shows for the signed-in operator.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
