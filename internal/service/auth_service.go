package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
	"github.com/tmarkovic/crate/internal/token"
)

var (
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrUserNotFound = errors.New("user not found")
)

type AuthService struct {
	userRepo repository.UserRepository
	issuer   *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Friendly pre-checks. The unique constraints are still the authority:
	// a concurrent insert that slips past these surfaces the same errors
	// from userRepo.Create.
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     input.Username,
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.IssueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCreds
	}

	if !verifyPassword(input.Password, *user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	return s.IssueTokens(user)
}

// Refresh verifies the refresh token and mints a new pair. No store access.
func (s *AuthService) Refresh(refreshToken string) (accessToken, newRefreshToken string, err error) {
	return s.issuer.Refresh(refreshToken)
}

// Me resolves the principal's backing record.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// IssueTokens mints an access/refresh pair for an already-authenticated
// user, e.g. after a Google callback.
func (s *AuthService) IssueTokens(user *domain.User) (*AuthResponse, error) {
	access, refresh, err := s.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
