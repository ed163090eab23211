package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ayoubre/employee-manager/internal/model"
)

// TokenRepo persists issued JWTs so logout can revoke them server-side.
// The tokens table is the sole authority on revocation state; validation
// re-reads it on every request instead of caching blacklist results.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a row for a freshly issued token with blacklisted=false.
// expiresAt comes from the same TTL used to sign the token's exp claim.
func (r *TokenRepo) Store(ctx context.Context, token string, userID uint64, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tokens (token, user_id, expires_at) VALUES (?,?,?)",
		token, userID, expiresAt)
	return err
}

// Get returns the stored record for a token string, or sql.ErrNoRows when
// the token was never issued by this server.
func (r *TokenRepo) Get(ctx context.Context, token string) (model.Token, error) {
	var t model.Token
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,token,user_id,expires_at,blacklisted,created_at,updated_at FROM tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &t.Blacklisted, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Blacklist marks a token as revoked.  The conditional UPDATE is atomic
// under concurrent logouts; once set, blacklisted never reverts.  The
// returned flag reports whether a matching record exists at all, so
// blacklisting an already-blacklisted token still succeeds.
func (r *TokenRepo) Blacklist(ctx context.Context, token string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tokens SET blacklisted=1 WHERE token=? AND blacklisted=0",
		token)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return true, nil
	}
	// Nothing changed: either the token is unknown or it was already
	// blacklisted. Distinguish by existence.
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM tokens WHERE token=?)", token).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
