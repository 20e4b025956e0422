package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lumahq/identity/internal/identity/domain"
	"github.com/lumahq/identity/internal/identity/store"
	"github.com/lumahq/identity/pkg/cryptox"
	"github.com/lumahq/identity/pkg/idx"
	"github.com/lumahq/identity/pkg/slogx"
)

var (
	// ErrEmailTaken reports a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is the single error for every login failure:
	// unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService handles registration and login: the only two operations
// reachable without a bearer token.
type AccountService struct {
	Store  store.Store
	Tokens *TokenService
}

// RegisterInput carries the already-validated registration fields.
// Shape validation (required fields, email format) happens at the HTTP
// boundary; this layer owns uniqueness and atomicity.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// Register creates the user, their default organisation, and the sole
// membership linking them, all inside one transaction. On success it
// returns the stored user and a signed access token.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	passHash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: passHash,
		Phone:        strings.TrimSpace(in.Phone),
		Active:       true,
		Staff:        false,
	}

	org := domain.Organisation{
		ID:          idx.New().String(),
		Name:        domain.DefaultOrganisationName(user.FirstName),
		Description: "",
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.Organisations().CreateOrganisation(ctx, org); err != nil {
			return fmt.Errorf("create default organisation: %w", err)
		}
		if err := tx.Organisations().AddMember(ctx, org.ID, user.ID); err != nil {
			return fmt.Errorf("add creator membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		l.Error("failed to issue token after registration", "user_id", user.ID, "err", err)
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	l.Info("user registered", "user_id", user.ID, "org_id", org.ID)
	return user, token, nil
}

// Login verifies email+password and issues a token. Every failure mode
// (unknown email, wrong password, inactive account) collapses into
// ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash so a missing user costs about the same as a
			// wrong password.
			_, _ = cryptox.HashPassword(password)
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	if !user.Active {
		l.Info("login rejected for inactive user", "user_id", user.ID)
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// NormalizeEmail lowercases and trims an email address. Uniqueness and
// lookups both key on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
