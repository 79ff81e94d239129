// Package auth is responsible for authentication and authorization: user
// registration, login, access-token issuance and verification, the password
// reset lifecycle, and the bearer-token middleware guarding protected routes.
package auth

import "time"

// User represents a user in the system. The password digest carries the
// json:"-" tag so it can never leak into an API response.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	PasswordDigest string    `json:"-"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResetToken is a single-use, time-limited capability allowing its holder to
// set a new password for the owning user. Spent tokens are marked used rather
// than deleted.
type ResetToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
