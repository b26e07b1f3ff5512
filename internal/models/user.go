package models

import "time"

// User roles.
const (
	RoleUnderwriter = "underwriter"
	RoleAdmin       = "admin"
)

// User is an underwriter account.
type User struct {
	Username     string    `json:"username" badgerhold:"key"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserKeyValue is a per-user config entry (e.g. the selected quote option for
// a submission, persisted across navigation).
type UserKeyValue struct {
	ID        string    `json:"id" badgerhold:"key"` // userID + "/" + key
	UserID    string    `json:"user_id" badgerhold:"index"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
