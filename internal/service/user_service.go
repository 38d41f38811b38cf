package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FernandoZnga/todo-app-fullstack/internal/auth"
	"github.com/FernandoZnga/todo-app-fullstack/internal/cache"
	apperrors "github.com/FernandoZnga/todo-app-fullstack/internal/errors"
	"github.com/FernandoZnga/todo-app-fullstack/internal/model"
	"github.com/FernandoZnga/todo-app-fullstack/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
)

// UserService handles the account lifecycle: registration, confirmation,
// login, profile resolution and the password-reset flow.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Confirm(ctx context.Context, token string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type userService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates an unverified user with hashed password and a fresh
// verification token. Delivering the token to the user is the caller's
// concern.
func (s *userService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.ErrEmptyFields
	}

	// Pre-check keeps the common duplicate case off the unique index, the
	// index itself still decides under concurrent registration.
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token := auth.NewOpaqueToken()
	user := &model.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hashedPassword),
		Verified:          false,
		VerificationToken: &token,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Confirm redeems a verification token, flipping the account to verified
// exactly once. The token is cleared so it cannot be replayed.
func (s *userService) Confirm(ctx context.Context, token string) (*model.User, error) {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find user by token: %w", err)
	}

	user.Verified = true
	user.VerificationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("confirm user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// Login authenticates a verified user and returns a signed session token.
func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if !user.Verified {
		return "", apperrors.ErrUserNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrBadPassword
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// GetByID resolves a user, serving repeated lookups (one per authenticated
// request) from the cache.
func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ForgotPassword stores a fresh reset token on the account.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	token := auth.NewOpaqueToken()
	user.VerificationToken = &token
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

// VerifyResetToken checks that a reset token exists without consuming it.
func (s *userService) VerifyResetToken(ctx context.Context, token string) error {
	if _, err := s.userRepo.FindByToken(ctx, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("find user by token: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token: the password is re-hashed and the
// token cleared so it is single-use.
func (s *userService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return apperrors.ErrEmptyFields
	}

	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("find user by token: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.VerificationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}
