package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lumahq/identity/internal/identity/domain"
	"github.com/lumahq/identity/internal/identity/store"
	"github.com/lumahq/identity/pkg/idx"
	"github.com/lumahq/identity/pkg/slogx"
)

var (
	// ErrUserNotFound reports that the target user of a membership
	// operation does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyMember reports a duplicate membership grant.
	ErrAlreadyMember = errors.New("user is already a member")
)

// OrganisationService owns organisation CRUD and membership. Every read
// is scoped to the caller: organisations you are not a member of do not
// exist as far as this service is concerned.
type OrganisationService struct {
	Store store.Store
}

// ListForCaller returns every organisation the caller belongs to,
// oldest first.
func (s *OrganisationService) ListForCaller(ctx context.Context, callerID string) ([]domain.Organisation, error) {
	orgs, err := s.Store.Organisations().ListForUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	return orgs, nil
}

// Get fetches one organisation, membership-scoped. Non-members get
// ErrNotFound whether or not the organisation exists.
func (s *OrganisationService) Get(ctx context.Context, orgID, callerID string) (domain.Organisation, error) {
	member, err := s.Store.Organisations().IsMember(ctx, orgID, callerID)
	if err != nil {
		return domain.Organisation{}, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return domain.Organisation{}, ErrNotFound
	}

	org, err := s.Store.Organisations().GetOrganisationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Organisation{}, ErrNotFound
		}
		return domain.Organisation{}, fmt.Errorf("get organisation: %w", err)
	}
	return org, nil
}

// Create writes a new organisation with the caller as its first member.
func (s *OrganisationService) Create(ctx context.Context, callerID, name, description string) (domain.Organisation, error) {
	org := domain.Organisation{
		ID:          idx.New().String(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organisations().CreateOrganisation(ctx, org); err != nil {
			return fmt.Errorf("create organisation: %w", err)
		}
		if err := tx.Organisations().AddMember(ctx, org.ID, callerID); err != nil {
			return fmt.Errorf("add creator membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Organisation{}, err
	}

	slogx.FromContext(ctx).Info("organisation created", "org_id", org.ID, "user_id", callerID)
	return org, nil
}

// AddMember grants userID membership of orgID. The caller must already
// be a member; otherwise the organisation is reported as missing.
func (s *OrganisationService) AddMember(ctx context.Context, orgID, callerID, userID string) error {
	member, err := s.Store.Organisations().IsMember(ctx, orgID, callerID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return ErrNotFound
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.Store.Organisations().AddMember(ctx, orgID, userID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("add member: %w", err)
	}

	slogx.FromContext(ctx).Info("member added", "org_id", orgID, "user_id", userID, "added_by", callerID)
	return nil
}
