package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumahq/identity/internal/identity/domain"
	"github.com/lumahq/identity/internal/identity/store"
	"github.com/lumahq/identity/internal/identity/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, id, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           id,
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "x",
		Active:       true,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u1", "ada@example.com")

	err := s.Users().CreateUser(ctx, domain.User{
		ID:           "u2",
		Email:        "ada@example.com",
		PasswordHash: "x",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Users().GetUserByID(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUserActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "u1", "ada@example.com")

	require.NoError(t, s.Users().SetUserActive(ctx, u.ID, false))
	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	require.ErrorIs(t, s.Users().SetUserActive(ctx, "missing", true), store.ErrNotFound)
}

func TestDuplicateMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "u1", "ada@example.com")
	require.NoError(t, s.Organisations().CreateOrganisation(ctx, domain.Organisation{ID: "o1", Name: "Acme"}))

	require.NoError(t, s.Organisations().AddMember(ctx, "o1", u.ID))
	require.ErrorIs(t, s.Organisations().AddMember(ctx, "o1", u.ID), store.ErrAlreadyExists)

	count, err := s.Organisations().CountMembers(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestListForUserOrderedOldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "u1", "ada@example.com")

	for _, id := range []string{"o1", "o2", "o3"} {
		require.NoError(t, s.Organisations().CreateOrganisation(ctx, domain.Organisation{ID: id, Name: id}))
		require.NoError(t, s.Organisations().AddMember(ctx, id, u.ID))
	}

	orgs, err := s.Organisations().ListForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 3)
	require.Equal(t, "o1", orgs[0].ID)
	require.Equal(t, "o3", orgs[2].ID)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, domain.User{
			ID:           "u1",
			Email:        "ada@example.com",
			PasswordHash: "x",
		}))
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Users().GetUserByID(ctx, "u1")
	require.ErrorIs(t, err, store.ErrNotFound)
}
