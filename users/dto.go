// Package users encapsulates user profile management: reading and updating
// the authenticated user's own record.
// This file defines its request and response payloads.
package users

import "github.com/user/moodmoment-go/auth"

// UpdateProfileRequest represents the data for updating a profile. The
// display name is required; the password change is optional. The admin flag
// is deliberately absent: it is not mutable through any endpoint.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName" example:"Jane Doe"`
	NewPassword string `json:"newPassword,omitempty"`
}

// UpdateProfileResponse wraps the updated user record.
type UpdateProfileResponse struct {
	User *auth.User `json:"user"`
}
