package model

import "time"

// User is the public profile returned by the auth backend.
type User struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthState is the persisted login session.
type AuthState struct {
	User  *User   `json:"user"`
	Token *string `json:"token"`
}

// Account is a registered user as stored by the mock auth backend.
type Account struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Profile returns the public view of the account.
func (a Account) Profile() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
