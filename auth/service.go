package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Service orchestrates registration, login, and the password reset lifecycle
// on top of the credential hasher, the token codec, and the two stores.
type Service struct {
	users  UserStore
	resets ResetTokenStore
	codec  *TokenCodec
	cfg    config.AuthConfig
}

// NewService creates a new auth Service. Dependencies are injected explicitly
// via constructor arguments.
func NewService(users UserStore, resets ResetTokenStore, codec *TokenCodec, cfg config.AuthConfig) *Service {
	return &Service{
		users:  users,
		resets: resets,
		codec:  codec,
		cfg:    cfg,
	}
}

// Register creates a new user and logs them in. Fails with a ConflictError if
// the email is already taken.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	digest := HashCredentials(req.Password, req.Email)

	user, err := s.users.CreateUser(ctx, req.Email, req.FullName, digest)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("user already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{AccessToken: token, User: user}, nil
}

// Login authenticates a user by email and password. Any mismatch yields the
// same generic error, revealing neither whether the email exists nor whether
// the password was wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	digest := HashCredentials(req.Password, req.Email)

	user, err := s.users.GetUserByCredentials(ctx, req.Email, digest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid email or password", nil)
		}
		log.Printf("database error during login: %v", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{AccessToken: token, User: user}, nil
}

// RequestPasswordReset issues a reset token for the given email. When the
// email does not match any user the response is indistinguishable from the
// success case and nothing is persisted, preventing account enumeration.
// origin is the client origin used to build the demo-mode reset link.
func (s *Service) RequestPasswordReset(ctx context.Context, email, origin string) (*ResetRequestResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &ResetRequestResponse{Message: "Reset link sent if email exists"}, nil
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL)
	if _, err := s.resets.CreateResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return nil, apperror.NewDatabaseError("failed to store reset token", err)
	}

	resp := &ResetRequestResponse{Message: "Reset link generated"}
	if s.cfg.ExposeResetLink {
		// Demo mode only. A production deployment delivers the link
		// out-of-band and never in the response body.
		resp.ResetLink = fmt.Sprintf("%s/reset-password?token=%s", strings.TrimSuffix(origin, "/"), token)
	}
	return resp, nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password,
// re-hashed against the owning user's email. A token that is unknown, spent,
// or expired fails as invalid.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.resets.ConsumeResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewBadRequestError("invalid or expired token", nil)
		}
		return apperror.NewDatabaseError("failed to redeem reset token", err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("user not found", nil)
		}
		return apperror.NewDatabaseError("failed to get user", err)
	}

	digest := HashCredentials(newPassword, user.Email)
	if err := s.users.UpdatePasswordDigest(ctx, user.ID, digest); err != nil {
		return apperror.NewDatabaseError("failed to update password", err)
	}
	return nil
}
