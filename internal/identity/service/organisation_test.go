package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumahq/identity/internal/identity/domain"
	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/internal/identity/store"
)

func deactivateUser(t *testing.T, st store.Store, userID string) {
	t.Helper()
	require.NoError(t, st.Users().SetUserActive(context.Background(), userID, false))
}

func registerUser(t *testing.T, accounts *service.AccountService, email string) domain.User {
	t.Helper()
	user, _, err := accounts.Register(context.Background(), service.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "hunter2",
	})
	require.NoError(t, err)
	return user
}

func TestGetOrganisationScopedToMembers(t *testing.T) {
	accounts, st := newAccounts(t)
	orgs := &service.OrganisationService{Store: st}
	ctx := context.Background()

	owner := registerUser(t, accounts, "owner@example.com")
	outsider := registerUser(t, accounts, "outsider@example.com")

	org, err := orgs.Create(ctx, owner.ID, "Acme", "widgets")
	require.NoError(t, err)

	got, err := orgs.Get(ctx, org.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)

	// A non-member sees the same error as a missing organisation.
	_, err = orgs.Get(ctx, org.ID, outsider.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = orgs.Get(ctx, "01J00000000000000000000000", owner.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestListForCallerOnlyReturnsMemberships(t *testing.T) {
	accounts, st := newAccounts(t)
	orgs := &service.OrganisationService{Store: st}
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@example.com")
	bob := registerUser(t, accounts, "bob@example.com")

	_, err := orgs.Create(ctx, alice.ID, "Acme", "")
	require.NoError(t, err)

	aliceOrgs, err := orgs.ListForCaller(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceOrgs, 2) // default org + Acme

	bobOrgs, err := orgs.ListForCaller(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobOrgs, 1)
}

func TestAddMember(t *testing.T) {
	accounts, st := newAccounts(t)
	orgs := &service.OrganisationService{Store: st}
	ctx := context.Background()

	owner := registerUser(t, accounts, "owner@example.com")
	invitee := registerUser(t, accounts, "invitee@example.com")
	outsider := registerUser(t, accounts, "outsider@example.com")

	org, err := orgs.Create(ctx, owner.ID, "Acme", "")
	require.NoError(t, err)

	require.NoError(t, orgs.AddMember(ctx, org.ID, owner.ID, invitee.ID))

	member, err := st.Organisations().IsMember(ctx, org.ID, invitee.ID)
	require.NoError(t, err)
	require.True(t, member)

	// A non-member caller cannot even see the organisation.
	err = orgs.AddMember(ctx, org.ID, outsider.ID, outsider.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	// Unknown target user.
	err = orgs.AddMember(ctx, org.ID, owner.ID, "01J00000000000000000000000")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestAddMemberDuplicateLeavesMemberCountUnchanged(t *testing.T) {
	accounts, st := newAccounts(t)
	orgs := &service.OrganisationService{Store: st}
	ctx := context.Background()

	owner := registerUser(t, accounts, "owner@example.com")
	invitee := registerUser(t, accounts, "invitee@example.com")

	org, err := orgs.Create(ctx, owner.ID, "Acme", "")
	require.NoError(t, err)
	require.NoError(t, orgs.AddMember(ctx, org.ID, owner.ID, invitee.ID))

	err = orgs.AddMember(ctx, org.ID, owner.ID, invitee.ID)
	require.ErrorIs(t, err, service.ErrAlreadyMember)

	count, err := st.Organisations().CountMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
