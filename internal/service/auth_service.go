package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

const tokenTTL = 24 * time.Hour

// AuthService issues and backs the identities the core operations consume.
// Tokens are HS256 JWTs carrying the user id and role.
type AuthService struct {
	users  repository.UserRepository
	secret []byte
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, secret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), logger: logger}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (int64, error) {
	if name == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return 0, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("failed to check email", zap.Error(err))
		return 0, fmt.Errorf("failed to register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	id, err := s.users.Create(ctx, &user)
	if err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return 0, fmt.Errorf("failed to register: %w", err)
	}
	return id, nil
}

// Login verifies credentials and returns a signed token plus the account.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, entity.User, error) {
	if email == "" || password == "" {
		return "", entity.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", entity.User{}, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("failed to look up user", zap.Error(err))
		return "", entity.User{}, fmt.Errorf("failed to log in: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", entity.User{}, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return "", entity.User{}, fmt.Errorf("failed to log in: %w", err)
	}
	return token, user, nil
}
