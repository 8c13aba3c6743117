package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/EmpoweredVote/DoseRight/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrUserExists means the username or email is already registered.
	ErrUserExists   = errors.New("username or email already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Store persists users. Uniqueness of username and email is enforced by the
// database, so concurrent signups cannot both succeed.
type Store struct {
	db *gorm.DB
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d}
}

func (s *Store) Create(ctx context.Context, u *User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if db.IsDuplicate(err) {
		return ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *Store) FindByID(ctx context.Context, id string) (User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Store) first(ctx context.Context, query string, arg string) (User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, query, arg).Error
	if db.IsNotFound(err) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
