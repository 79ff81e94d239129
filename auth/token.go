package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/moodmoment-go/apperror"
	"github.com/user/moodmoment-go/config"
)

// TokenCodec issues and verifies the self-contained bearer tokens used for
// stateless authentication. Tokens are compact HS256 JWTs carrying the user
// id as subject plus issued-at and expiry timestamps. The signing secret is
// injected at construction and immutable afterwards.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	// legacy disables signature verification, accepting any structurally
	// well-formed, unexpired token. The original deployment behaved this
	// way; the mode exists only so tests can exercise both behaviors.
	legacy bool
}

// NewTokenCodec creates a TokenCodec from the auth configuration.
func NewTokenCodec(cfg config.AuthConfig) *TokenCodec {
	return &TokenCodec{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.AccessTokenTTL,
		legacy: cfg.LegacyTokenVerify,
	}
}

// Issue creates a signed token for the given subject id, expiring after the
// configured TTL.
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token string and returns its subject id. A token is
// invalid if it does not have exactly three non-empty dot-separated segments,
// if its signature does not verify (strict mode), or if its expiry is at or
// before the current time.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", apperror.NewAuthError("invalid token", nil)
	}

	claims := &jwt.RegisteredClaims{}
	if c.legacy {
		// Legacy behavior: decode the payload without checking the
		// signature. Expiry is still enforced below.
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return "", apperror.NewAuthError("invalid token", err)
		}
	} else {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return "", fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secret, nil
		})
		if err != nil {
			return "", apperror.NewAuthError("invalid token", err)
		}
		if !token.Valid {
			return "", apperror.NewAuthError("invalid token", nil)
		}
	}

	// Expiry boundary: a token whose exp equals "now" is already expired.
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return "", apperror.NewAuthError("token has expired", nil)
	}
	if claims.Subject == "" {
		return "", apperror.NewAuthError("invalid token: missing subject", nil)
	}

	return claims.Subject, nil
}
