package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStore is the persistence boundary for user records. The pgx
// implementation below is used in production; tests substitute in-memory
// fakes.
type UserStore interface {
	CreateUser(ctx context.Context, email, fullName, passwordDigest string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByCredentials matches on email and password digest together, so
	// a miss never reveals which of the two was wrong.
	GetUserByCredentials(ctx context.Context, email, passwordDigest string) (*User, error)
	// UpdateUser sets the display name and, when passwordDigest is non-nil,
	// the password digest. The admin flag is not reachable from here.
	UpdateUser(ctx context.Context, id, fullName string, passwordDigest *string) (*User, error)
	UpdatePasswordDigest(ctx context.Context, id, passwordDigest string) error
	ListUsers(ctx context.Context) ([]User, error)
}

// ResetTokenStore persists password reset tokens.
type ResetTokenStore interface {
	CreateResetToken(ctx context.Context, userID, token string, expiresAt time.Time) (*ResetToken, error)
	// ConsumeResetToken atomically marks an unused, unexpired token as used
	// and returns the owning user id. The update is conditioned on the token
	// being currently unused, so of any number of concurrent redemption
	// attempts at most one can succeed. Returns pgx.ErrNoRows when the token
	// is unknown, already spent, or expired.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// NewUserStore returns the PostgreSQL-backed UserStore.
func NewUserStore(pool *pgxpool.Pool) UserStore {
	return &pgUserStore{pool: pool}
}

// NewResetTokenStore returns the PostgreSQL-backed ResetTokenStore.
func NewResetTokenStore(pool *pgxpool.Pool) ResetTokenStore {
	return &pgResetTokenStore{pool: pool}
}

type pgUserStore struct {
	pool *pgxpool.Pool
}

func (s *pgUserStore) CreateUser(ctx context.Context, email, fullName, passwordDigest string) (*User, error) {
	user := &User{
		Email:          email,
		FullName:       fullName,
		PasswordDigest: passwordDigest,
	}
	query := `INSERT INTO users (email, full_name, password_hash)
	          VALUES ($1, $2, $3)
	          RETURNING id, is_admin, created_at`
	err := s.pool.QueryRow(ctx, query, email, fullName, passwordDigest).
		Scan(&user.ID, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *pgUserStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, email, full_name, password_hash, is_admin, created_at
	          FROM users WHERE id = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *pgUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, full_name, password_hash, is_admin, created_at
	          FROM users WHERE email = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, email))
}

func (s *pgUserStore) GetUserByCredentials(ctx context.Context, email, passwordDigest string) (*User, error) {
	query := `SELECT id, email, full_name, password_hash, is_admin, created_at
	          FROM users WHERE email = $1 AND password_hash = $2`
	return s.scanUser(s.pool.QueryRow(ctx, query, email, passwordDigest))
}

func (s *pgUserStore) UpdateUser(ctx context.Context, id, fullName string, passwordDigest *string) (*User, error) {
	var query string
	var args []interface{}
	if passwordDigest != nil {
		query = `UPDATE users SET full_name = $1, password_hash = $2 WHERE id = $3
		         RETURNING id, email, full_name, password_hash, is_admin, created_at`
		args = []interface{}{fullName, *passwordDigest, id}
	} else {
		query = `UPDATE users SET full_name = $1 WHERE id = $2
		         RETURNING id, email, full_name, password_hash, is_admin, created_at`
		args = []interface{}{fullName, id}
	}
	return s.scanUser(s.pool.QueryRow(ctx, query, args...))
}

func (s *pgUserStore) UpdatePasswordDigest(ctx context.Context, id, passwordDigest string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordDigest, id)
	return err
}

func (s *pgUserStore) ListUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, email, full_name, password_hash, is_admin, created_at
	          FROM users ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordDigest, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// rowScanner matches the Scan method shared by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *pgUserStore) scanUser(row rowScanner) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordDigest, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type pgResetTokenStore struct {
	pool *pgxpool.Pool
}

func (s *pgResetTokenStore) CreateResetToken(ctx context.Context, userID, token string, expiresAt time.Time) (*ResetToken, error) {
	rt := &ResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	query := `INSERT INTO password_reset_tokens (user_id, token, expires_at)
	          VALUES ($1, $2, $3)
	          RETURNING id, used, created_at`
	err := s.pool.QueryRow(ctx, query, userID, token, expiresAt).
		Scan(&rt.ID, &rt.Used, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *pgResetTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	// The used-flag transition is the compare-and-set: the row is only
	// updated if it is currently unused and unexpired, and the database's
	// single-row update atomicity guarantees at most one caller sees the
	// returned row.
	query := `UPDATE password_reset_tokens
	          SET used = TRUE
	          WHERE token = $1 AND used = FALSE AND expires_at > now()
	          RETURNING user_id`
	var userID string
	if err := s.pool.QueryRow(ctx, query, token).Scan(&userID); err != nil {
		return "", err
	}
	return userID, nil
}
