package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/internal/identity/store"
	"github.com/lumahq/identity/internal/identity/store/drivers/sqlite"
	"github.com/lumahq/identity/pkg/cryptox"
	"github.com/lumahq/identity/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "identity-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestTokens(t *testing.T) *service.TokenService {
	t.Helper()

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "identity-test"})
	require.NoError(t, err)

	return &service.TokenService{KeyManager: km, Issuer: "identity-test"}
}

func newAccounts(t *testing.T) (*service.AccountService, store.Store) {
	t.Helper()
	st := newTestStore(t)
	return &service.AccountService{Store: st, Tokens: newTestTokens(t)}, st
}

func TestRegisterCreatesUserWithDefaultOrganisation(t *testing.T) {
	accounts, st := newAccounts(t)
	ctx := context.Background()

	user, token, err := accounts.Register(ctx, service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.COM",
		Password:  "hunter2",
		Phone:     "0400000000",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "ada@example.com", user.Email)
	require.True(t, user.Active)
	require.False(t, user.Staff)

	orgs, err := st.Organisations().ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, "Ada's Organisation", orgs[0].Name)

	count, err := st.Organisations().CountMembers(ctx, orgs[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRegisterDuplicateEmailLeavesNoPartialWrites(t *testing.T) {
	accounts, st := newAccounts(t)
	ctx := context.Background()

	in := service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "hunter2",
	}

	first, _, err := accounts.Register(ctx, in)
	require.NoError(t, err)

	in.FirstName = "Grace"
	_, _, err = accounts.Register(ctx, in)
	require.ErrorIs(t, err, service.ErrEmailTaken)

	// The failed attempt must not have left behind a second
	// organisation or membership.
	orgs, err := st.Organisations().ListForUser(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	registered, _, err := accounts.Register(ctx, service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "hunter2",
	})
	require.NoError(t, err)

	user, token, err := accounts.Login(ctx, "  ADA@example.com ", "hunter2")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	claims, err := accounts.Tokens.KeyManager.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "ada@example.com", claims.Email)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	_, _, err := accounts.Register(ctx, service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "hunter2",
	})
	require.NoError(t, err)

	_, _, err = accounts.Login(ctx, "nobody@example.com", "hunter2")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = accounts.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	accounts, st := newAccounts(t)
	ctx := context.Background()

	user, _, err := accounts.Register(ctx, service.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "hunter2",
	})
	require.NoError(t, err)

	deactivateUser(t, st, user.ID)

	_, _, err = accounts.Login(ctx, "ada@example.com", "hunter2")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
