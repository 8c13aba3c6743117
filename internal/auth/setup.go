package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@doseright.com"
	AdminFullName = "Administrator"
)

// Init creates the users table.
func Init(d *gorm.DB) error {
	if err := d.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// SeedAdmin inserts the admin account unless it already exists.
func SeedAdmin(ctx context.Context, store *Store, password string, lg *zap.Logger) error {
	if _, err := store.FindByUsername(ctx, AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	email := AdminEmail
	admin := User{
		ID:           uuid.NewString(),
		Username:     AdminUsername,
		Email:        &email,
		PasswordHash: string(hash),
		FullName:     AdminFullName,
	}
	// Another instance may have seeded first.
	if err := store.Create(ctx, &admin); err != nil && !errors.Is(err, ErrUserExists) {
		return err
	}
	lg.Info("seeded admin user", zap.String("username", AdminUsername))
	return nil
}
