package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/synergysphere/sphere/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
)

// passwordCost is the bcrypt work factor. bcrypt salts every hash itself.
const passwordCost = 10

// Service registers users and exchanges credentials for bearer tokens.
type Service struct {
	userRepo  domain.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates a new auth service.
func NewService(userRepo domain.UserRepository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a user with a bcrypt-hashed password. Emails are compared
// case-insensitively; a taken email yields ErrUserAlreadyExists.
func (s *Service) Register(ctx context.Context, name, email, password, teamName string) (*domain.User, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		TeamName:     teamName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return user, nil
}

// Login verifies email/password and returns a signed bearer token together
// with the authenticated user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}
	if err != nil {
		return "", nil, fmt.Errorf("auth.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("auth.Login: %w", ErrInvalidCredentials)
	}

	token, err := IssueToken(s.jwtSecret, user.ID, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("auth.Login: %w", err)
	}

	return token, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
