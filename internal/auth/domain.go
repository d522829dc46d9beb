package auth

import "time"

// User represents an account that can sign in and own ledger rows.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserInput carries the fields required to register a user.
type CreateUserInput struct {
	Username string
	Password string
	IsAdmin  bool
}
