package store

import (
	"context"
	"errors"

	"github.com/lumahq/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Organisations() Organisations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn errors,
	// committed otherwise. This is the way registration keeps its
	// user+organisation+membership writes atomic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by case-normalized email. Callers
	// normalize before querying.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// SetUserActive flips the active flag. Returns ErrNotFound when the
	// user does not exist.
	SetUserActive(ctx context.Context, id string, active bool) error
}

type Organisations interface {
	// CreateOrganisation inserts a new organisation (id is ULID).
	CreateOrganisation(ctx context.Context, o domain.Organisation) error

	// GetOrganisationByID returns an organisation by id, regardless of
	// membership. Visibility scoping belongs to the service layer.
	GetOrganisationByID(ctx context.Context, id string) (domain.Organisation, error)

	// AddMember records that a user belongs to an organisation. Returns
	// ErrAlreadyExists when the pair is already present; the relation is
	// never silently duplicated.
	AddMember(ctx context.Context, orgID, userID string) error

	// IsMember reports whether the user belongs to the organisation.
	IsMember(ctx context.Context, orgID, userID string) (bool, error)

	// ListForUser returns every organisation the user is a member of,
	// oldest first.
	ListForUser(ctx context.Context, userID string) ([]domain.Organisation, error)

	// CountMembers returns the size of an organisation's member set.
	CountMembers(ctx context.Context, orgID string) (int, error)
}
