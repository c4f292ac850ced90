package services

import (
	"context"
	"errors"

	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// EnsureAdmin creates the bootstrap admin account unless it already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return storageErr("count users", err)
	}
	if count > 0 {
		return nil
	}
	return s.CreateUser(ctx, username, password, models.RoleAdmin)
}

func (s *UserService) CreateUser(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return invalid("username and password are required")
	}
	if role == "" {
		role = models.RoleViewer
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, &models.User{Username: username, PasswordHash: string(hash), Role: role}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return storageErr("create user", err)
	}
	return nil
}

func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
