package domain

// User is the restricted view of an account attached to a session.
// It never carries a password.
type User struct {
	ID        string        `json:"id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Email     string        `json:"email" validate:"required,email"`
	RoleLevel RoleLevel     `json:"roleLevel" validate:"required,oneof=ADMIN EDITOR USER CLIENT"`
	Status    AccountStatus `json:"status" validate:"required,oneof=ON OFF"`
}

// Credentials is the transient login input. Never stored.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the credential-exchange response: an opaque bearer token
// plus the authenticated user's profile.
type LoginResult struct {
	Token string `json:"token" validate:"required"`
	User  User   `json:"user" validate:"required"`
}
