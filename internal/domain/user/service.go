package user

import (
	"context"
	"errors"
	"fmt"

	"soldo/internal/shared/apperror"
	"soldo/internal/shared/auth"
)

// Service handles registration and login. Both failure modes of login
// collapse into the same Unauthorized error so the response never reveals
// whether the email exists.
type Service struct {
	repo Repository
	jwt  *auth.JWT
}

func NewService(repo Repository, jwt *auth.JWT) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// AuthResult is the public projection returned by Register and Login.
// The password hash never leaves the domain layer.
type AuthResult struct {
	User  *User
	Token string
}

func (s *Service) Register(ctx context.Context, email, password string, name *string) (*AuthResult, error) {
	var fields []apperror.FieldError
	if !IsValidEmail(email) {
		fields = append(fields, apperror.FieldError{Field: "email", Message: "Invalid email format"})
	}
	for _, msg := range PasswordErrors(password) {
		fields = append(fields, apperror.FieldError{Field: "password", Message: msg})
	}
	if len(fields) > 0 {
		return nil, apperror.Validation("Validation failed", fields...)
	}

	// Friendly pre-check; the unique index on email is the final authority
	// and the repository translates its violation to Conflict.
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, CreateParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwt.Generate(created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: created, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	token, err := s.jwt.Generate(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: u, Token: token}, nil
}

// Get returns the public projection for the authenticated user.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
