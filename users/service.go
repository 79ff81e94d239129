// This file contains the business logic for profile operations.
package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/auth"
)

// Service provides profile read/update operations on top of the user store.
type Service struct {
	users auth.UserStore
}

// NewService creates a new users Service.
func NewService(users auth.UserStore) *Service {
	return &Service{users: users}
}

// GetProfile retrieves a user's own record by id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}

// UpdateProfile sets the display name and, if a new password was supplied,
// the password digest. The digest is re-derived against the stored email,
// since the email doubles as the hash salt.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*auth.User, error) {
	if req.FullName == "" {
		return nil, apperror.NewBadRequestError("full name is required", nil)
	}

	var digest *string
	if req.NewPassword != "" {
		current, err := s.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		d := auth.HashCredentials(req.NewPassword, current.Email)
		digest = &d
	}

	user, err := s.users.UpdateUser(ctx, userID, req.FullName, digest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	return user, nil
}
