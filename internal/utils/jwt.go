package utils // package utils provides helper functions for token creation and verification

import (
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/ayoubre/employee-manager/internal/model"
)

// IssuedToken represents a signed JWT along with its expiry.  The Token
// field contains the serialized JWT string that clients send back in the
// Authorization header.  ExpiresAt is the UTC expiration time; the exact
// same instant is encoded in the token's exp claim and written to the
// tokens table, so there is a single source of truth for token lifetime.
type IssuedToken struct {
	Token     string    // the serialized JWT string
	ExpiresAt time.Time // the UTC expiration time
}

// Identity carries the claims decoded from a verified token.  It mirrors
// the payload embedded at signing time.
type Identity struct {
	UserID   uint64
	Username string
	Email    string
	Role     string
}

// ErrTokenExpired marks a token whose exp claim has elapsed.  Callers that
// want to log expiry separately from other verification failures can test
// for it with errors.Is.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid covers every other verification failure: bad signature,
// malformed token, wrong signing algorithm, missing claims.
var ErrTokenInvalid = errors.New("token invalid")

// IssueToken builds and signs an HS256 JWT for a user.  The claims embed
// the user's id, username, email and role plus the standard exp and iat
// timestamps.  ttl controls the validity window.
func IssueToken(secret string, u model.User, ttl time.Duration) (IssuedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: signed, ExpiresAt: exp}, nil
}

// VerifyToken checks the signature and expiry of a raw token string and
// returns the identity embedded in its claims.  Expired tokens yield
// ErrTokenExpired; anything else that fails verification yields
// ErrTokenInvalid.
func VerifyToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Identity{}, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrTokenInvalid
	}
	id, ok := claims["id"].(float64) // JSON numbers decode as float64
	if !ok || id <= 0 {
		return Identity{}, ErrTokenInvalid
	}
	ident := Identity{UserID: uint64(id)}
	if v, ok := claims["username"].(string); ok {
		ident.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		ident.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		ident.Role = v
	}
	return ident, nil
}
