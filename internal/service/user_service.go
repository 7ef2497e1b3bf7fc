package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

// ErrUserNotFound is returned for operations addressing a missing account.
var ErrUserNotFound = errors.New("user not found")

// UserService handles account administration and profile reads.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Profile(ctx context.Context, id int64) (entity.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.User{}, ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("failed to get user", zap.Int64("user_id", id), zap.Error(err))
		return entity.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", zap.Int64("user_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Promote grants the admin role.
func (s *UserService) Promote(ctx context.Context, id int64) error {
	err := s.users.Promote(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("failed to promote user", zap.Int64("user_id", id), zap.Error(err))
		return fmt.Errorf("failed to promote user: %w", err)
	}
	return nil
}
