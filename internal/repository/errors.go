// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings. Not-found conditions are reported
// with sql.ErrNoRows, matching the database/sql convention.
package repository

import "errors"

// ErrUserExists is returned when an insert would violate the unique
// constraint on users.username or users.email. Handlers should
// translate this into an HTTP 400 response.
var ErrUserExists = errors.New("user already exists")
