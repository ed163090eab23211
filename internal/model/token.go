package model

import "time"

// Token models an entry in the `tokens` table.  One row is inserted per
// issued JWT; the signed token string itself is stored so that logout can
// blacklist it server-side before its natural expiry.  A blacklisted row
// never reverts to non-blacklisted.
//
// Fields:
//  ID          – primary key identifier.
//  Token       – the signed JWT string (unique).
//  UserID      – owner of the token.
//  ExpiresAt   – expiration timestamp, derived from the same TTL used to
//                sign the token's exp claim.
//  Blacklisted – true once the token has been revoked via logout.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Token struct {
	ID          uint64    // tokens.id
	Token       string    // tokens.token
	UserID      uint64    // tokens.user_id
	ExpiresAt   time.Time // tokens.expires_at
	Blacklisted bool      // tokens.blacklisted
	CreatedAt   time.Time // tokens.created_at
	UpdatedAt   time.Time // tokens.updated_at
}
