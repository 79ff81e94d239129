// This file defines the request and response payloads for the auth endpoints.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
	FullName string `json:"fullName" example:"Jane Doe"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// AuthResponse is returned on successful registration or login. The user's
// password digest is never part of the embedded User.
type AuthResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User        *User  `json:"user"`
}

// ResetRequestBody represents the password reset request payload.
type ResetRequestBody struct {
	Email string `json:"email" example:"user@example.com"`
}

// ResetRequestResponse is returned for every reset request, whether or not
// the email matched a user. ResetLink is populated only in demo mode.
type ResetRequestResponse struct {
	Message   string `json:"message" example:"Reset link sent if email exists"`
	ResetLink string `json:"resetLink,omitempty"`
}

// ResetConfirmRequest represents the payload that redeems a reset token.
type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message" example:"Password updated successfully"`
}
