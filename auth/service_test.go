package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/config"
)

// --- in-memory fakes ---

// memUserStore implements UserStore on a map. It returns the same sentinel
// errors as the pgx implementation so the service's error handling is
// exercised as in production.
type memUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*User // keyed by id
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*User)}
}

func (s *memUserStore) CreateUser(ctx context.Context, email, fullName, passwordDigest string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	s.nextID++
	u := &User{
		ID:             fmt.Sprintf("user-%d", s.nextID),
		Email:          email,
		FullName:       fullName,
		PasswordDigest: passwordDigest,
		CreatedAt:      time.Now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *memUserStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memUserStore) GetUserByCredentials(ctx context.Context, email, passwordDigest string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.PasswordDigest == passwordDigest {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memUserStore) UpdateUser(ctx context.Context, id, fullName string, passwordDigest *string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u.FullName = fullName
	if passwordDigest != nil {
		u.PasswordDigest = *passwordDigest
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) UpdatePasswordDigest(ctx context.Context, id, passwordDigest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordDigest = passwordDigest
	return nil
}

func (s *memUserStore) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []User
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

// memResetTokenStore implements ResetTokenStore with the same atomic
// consume-once semantics as the SQL compare-and-set.
type memResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*ResetToken // keyed by token value
}

func newMemResetTokenStore() *memResetTokenStore {
	return &memResetTokenStore{tokens: make(map[string]*ResetToken)}
}

func (s *memResetTokenStore) CreateResetToken(ctx context.Context, userID, token string, expiresAt time.Time) (*ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt := &ResetToken{
		ID:        fmt.Sprintf("reset-%d", len(s.tokens)+1),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	s.tokens[token] = rt
	return rt, nil
}

func (s *memResetTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.tokens[token]
	if !ok || rt.Used || !rt.ExpiresAt.After(time.Now()) {
		return "", pgx.ErrNoRows
	}
	rt.Used = true
	return rt.UserID, nil
}

func newTestService(users UserStore, resets ResetTokenStore) *Service {
	cfg := config.AuthConfig{
		TokenSecret:    "test-secret",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  time.Hour,
	}
	return NewService(users, resets, NewTokenCodec(cfg), cfg)
}

// --- tests ---

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues token", func(t *testing.T) {
		users := newMemUserStore()
		svc := newTestService(users, newMemResetTokenStore())

		resp, err := svc.Register(ctx, RegisterRequest{
			Email: "alice@example.com", Password: "hunter2", FullName: "Alice",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, "Alice", resp.User.FullName)
		assert.False(t, resp.User.IsAdmin)

		stored, err := users.GetUserByID(ctx, resp.User.ID)
		require.NoError(t, err)
		assert.Equal(t, HashCredentials("hunter2", "alice@example.com"), stored.PasswordDigest)
	})

	t.Run("duplicate email yields conflict", func(t *testing.T) {
		users := newMemUserStore()
		svc := newTestService(users, newMemResetTokenStore())

		_, err := svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "secret1", FullName: "Ann"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterRequest{Email: "a@x.com", Password: "other", FullName: "Imposter"})
		require.Error(t, err)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ConflictError, appErr.Type)

		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	svc := newTestService(users, newMemResetTokenStore())

	_, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter2", FullName: "Alice"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "alice@example.com", resp.User.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPassword := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "nope"})
		_, errUnknownEmail := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "hunter2"})

		for _, err := range []error{errWrongPassword, errUnknownEmail} {
			require.Error(t, err)
			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.AuthError, appErr.Type)
		}
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email reports success and persists nothing", func(t *testing.T) {
		resets := newMemResetTokenStore()
		svc := newTestService(newMemUserStore(), resets)

		resp, err := svc.RequestPasswordReset(ctx, "ghost@example.com", "https://app.example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Message)
		assert.Empty(t, resp.ResetLink)
		assert.Empty(t, resets.tokens)
	})

	t.Run("known email stores a single-use token", func(t *testing.T) {
		users := newMemUserStore()
		resets := newMemResetTokenStore()
		svc := newTestService(users, resets)

		reg, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter2", FullName: "Alice"})
		require.NoError(t, err)

		resp, err := svc.RequestPasswordReset(ctx, "alice@example.com", "https://app.example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Message)
		// Link exposure is off unless explicitly configured.
		assert.Empty(t, resp.ResetLink)

		require.Len(t, resets.tokens, 1)
		for _, rt := range resets.tokens {
			assert.Equal(t, reg.User.ID, rt.UserID)
			assert.False(t, rt.Used)
			assert.WithinDuration(t, time.Now().Add(time.Hour), rt.ExpiresAt, 5*time.Second)
		}
	})

	t.Run("reset link exposed only when configured", func(t *testing.T) {
		users := newMemUserStore()
		resets := newMemResetTokenStore()
		cfg := config.AuthConfig{
			TokenSecret:     "test-secret",
			AccessTokenTTL:  time.Hour,
			ResetTokenTTL:   time.Hour,
			ExposeResetLink: true,
		}
		svc := NewService(users, resets, NewTokenCodec(cfg), cfg)

		_, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter2", FullName: "Alice"})
		require.NoError(t, err)

		resp, err := svc.RequestPasswordReset(ctx, "alice@example.com", "https://app.example.com/")
		require.NoError(t, err)
		require.Len(t, resets.tokens, 1)
		for token := range resets.tokens {
			assert.Equal(t, "https://app.example.com/reset-password?token="+token, resp.ResetLink)
		}
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *memUserStore, *memResetTokenStore, string) {
		t.Helper()
		users := newMemUserStore()
		resets := newMemResetTokenStore()
		svc := newTestService(users, resets)

		_, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter2", FullName: "Alice"})
		require.NoError(t, err)
		_, err = svc.RequestPasswordReset(ctx, "alice@example.com", "")
		require.NoError(t, err)

		var token string
		for tk := range resets.tokens {
			token = tk
		}
		require.NotEmpty(t, token)
		return svc, users, resets, token
	}

	t.Run("redeems token and rehashes against stored email", func(t *testing.T) {
		svc, users, _, token := setup(t)

		require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "newpass"))

		u, err := users.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, HashCredentials("newpass", "alice@example.com"), u.PasswordDigest)

		_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "newpass"})
		assert.NoError(t, err)
		_, err = svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "hunter2"})
		assert.Error(t, err)
	})

	t.Run("second redemption fails", func(t *testing.T) {
		svc, _, _, token := setup(t)

		require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "first"))

		err := svc.ConfirmPasswordReset(ctx, token, "second")
		require.Error(t, err)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
	})

	t.Run("concurrent redemption succeeds exactly once", func(t *testing.T) {
		svc, _, _, token := setup(t)

		const attempts = 16
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = svc.ConfirmPasswordReset(ctx, token, fmt.Sprintf("pass-%d", i))
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
			}
		}
		assert.Equal(t, 1, successes)
	})

	t.Run("expired token fails", func(t *testing.T) {
		users := newMemUserStore()
		resets := newMemResetTokenStore()
		svc := newTestService(users, resets)

		reg, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Password: "hunter2", FullName: "Alice"})
		require.NoError(t, err)

		_, err = resets.CreateResetToken(ctx, reg.User.ID, "stale-token", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		err = svc.ConfirmPasswordReset(ctx, "stale-token", "newpass")
		require.Error(t, err)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
	})

	t.Run("unknown token fails", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		err := svc.ConfirmPasswordReset(ctx, "no-such-token", "newpass")
		require.Error(t, err)
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)
	})
}
