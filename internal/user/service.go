package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nekogravitycat/party-booking-backend/internal/auth"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/clock"
)

const minPasswordLength = 8

type Service interface {
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// EnsureAdmin creates the system admin account on first start. An existing account is left untouched.
	EnsureAdmin(ctx context.Context, email, password, displayName string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	clock  clock.Clock
}

func NewService(repo Repository, hasher auth.PasswordHasher, clk clock.Clock) Service {
	return &service{repo: repo, hasher: hasher, clock: clk}
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	// Inactive accounts get the same answer as a wrong password.
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		slog.WarnContext(ctx, "failed to record last login",
			slog.String("user_id", u.ID),
			slog.String("error", err.Error()),
		)
	} else {
		u.LastLoginAt = &now
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, email, password, displayName string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:         cleanEmail,
		PasswordHash:  hash,
		IsActive:      true,
		IsSystemAdmin: true,
	}
	if d := strings.TrimSpace(displayName); d != "" {
		u.DisplayName = &d
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// Another replica won the race.
		if errors.Is(err, ErrEmailAlreadyUsed) {
			return s.repo.GetByEmail(ctx, cleanEmail)
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return u, nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
