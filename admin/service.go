// Package admin exposes the administrator endpoints: listing all users and
// inspecting any user's mood history. Routes are guarded by auth.RequireAuth
// plus auth.RequireAdmin.
package admin

import (
	"context"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/auth"
	"github.com/user/moodmoment-go/moods"
)

// Service provides the admin read operations over the user and mood stores.
type Service struct {
	users auth.UserStore
	moods moods.Store
}

// NewService creates a new admin Service.
func NewService(users auth.UserStore, moodStore moods.Store) *Service {
	return &Service{users: users, moods: moodStore}
}

// ListUsers returns all users, newest first. Password digests are excluded
// from serialization by the model's json tag.
func (s *Service) ListUsers(ctx context.Context) ([]auth.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch users", err)
	}
	if users == nil {
		users = []auth.User{}
	}
	return users, nil
}

// UserMoods returns the given user's check-ins, most recent first.
func (s *Service) UserMoods(ctx context.Context, userID string) ([]moods.Entry, error) {
	entries, err := s.moods.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch user moods", err)
	}
	return entries, nil
}
