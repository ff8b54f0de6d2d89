package store

import (
	"context"
	"fmt"

	"wallet_admin/internal/domain" // Importing domain models
)

// FindUserByEmail looks a user up by login email
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, readErr("user", err)
	}
	return &user, nil
}

// GetUser loads a user by id
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, readErr("user "+id, err)
	}
	return &user, nil
}

// CreateAdmin stores a new admin account with an already hashed password
func (s *Store) CreateAdmin(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	if email == "" || passwordHash == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrValidation)
	}
	user := domain.User{Email: email, PasswordHash: passwordHash, Role: domain.RoleAdmin} // Id assigned in BeforeCreate
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, writeErr("admin user", err)
	}
	return &user, nil
}
