package domain

import "errors"

// RoleLevel is the closed set of privilege levels an account can hold.
type RoleLevel string

const (
	RoleAdmin  RoleLevel = "ADMIN"
	RoleEditor RoleLevel = "EDITOR"
	RoleUser   RoleLevel = "USER"
	RoleClient RoleLevel = "CLIENT"
)

// AccountStatus is the on/off switch applied to an account.
type AccountStatus string

const (
	StatusOn  AccountStatus = "ON"
	StatusOff AccountStatus = "OFF"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")

// ErrMalformedResponse reports a response body that matched none of the
// accepted shapes for the accounts list endpoint.
var ErrMalformedResponse = errors.New("cannot parse accounts response")

// Account is a single administrable record as served by the remote API.
// ID is server-assigned and immutable; CreatedAt/UpdatedAt are opaque
// timestamp strings that are never interpreted client-side.
type Account struct {
	ID        string        `json:"id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Email     string        `json:"email" validate:"required,email"`
	RoleLevel RoleLevel     `json:"roleLevel" validate:"required,oneof=ADMIN EDITOR USER CLIENT"`
	Status    AccountStatus `json:"status" validate:"required,oneof=ON OFF"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
}

// AccountForm is the transient input for account creation. It is never
// persisted client-side; the password travels only on the create call.
type AccountForm struct {
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=6"`
	RoleLevel RoleLevel `json:"roleLevel" validate:"required,oneof=ADMIN EDITOR USER CLIENT"`
}

// AccountUpdate is a partial update. Nil fields mean "leave unchanged";
// the merge policy is enforced server-side.
type AccountUpdate struct {
	Name      *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Email     *string        `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string        `json:"password,omitempty" validate:"omitempty,min=6"`
	RoleLevel *RoleLevel     `json:"roleLevel,omitempty" validate:"omitempty,oneof=ADMIN EDITOR USER CLIENT"`
	Status    *AccountStatus `json:"status,omitempty" validate:"omitempty,oneof=ON OFF"`
}

// AccountList is the envelope the list endpoint is supposed to return.
// The backend is not uniform about it, hence the fallback parsing in the
// account gateway.
type AccountList struct {
	Data     []Account `json:"data" validate:"required,dive"`
	Total    *int      `json:"total,omitempty"`
	Page     *int      `json:"page,omitempty"`
	PageSize *int      `json:"pageSize,omitempty"`
}
