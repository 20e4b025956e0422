package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumahq/identity/internal/identity/domain"
	"github.com/lumahq/identity/internal/identity/store"
)

// ErrNotFound reports a missing or invisible resource. Handlers map it
// to a 404 without saying which of the two it was.
var ErrNotFound = errors.New("not found")

// UserService exposes read access to user records.
type UserService struct {
	Store store.Store
}

// GetUserByID fetches a single user.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
