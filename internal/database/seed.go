package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/ayoubre/employee-manager/internal/model"
	"github.com/ayoubre/employee-manager/internal/repository"
	"github.com/ayoubre/employee-manager/internal/utils"
)

// SeedAdmin creates the default admin account when it does not exist yet.
// Intended for fresh environments behind the SEED_ADMIN flag; the password
// below must be rotated before any real deployment.
func SeedAdmin(ctx context.Context, users *repository.UserRepo, bcryptCost int) error {
	_, err := users.GetByUsername(ctx, "admin")
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := utils.HashPassword("admin123", bcryptCost)
	if err != nil {
		return err
	}
	if _, err := users.Create(ctx, "admin", "admin@example.com", hash, model.RoleAdmin); err != nil {
		// A concurrent instance may have seeded first; that is fine.
		if errors.Is(err, repository.ErrUserExists) {
			return nil
		}
		return err
	}
	log.Println("seeded default admin account")
	return nil
}
