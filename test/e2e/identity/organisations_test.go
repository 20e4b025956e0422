package identity_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/stretchr/testify/require"
)

func TestE2EOrganisationLifecycle(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	owner := mustRegister(t, client, "owner@example.com")

	created, err := owner.CreateOrganisation(ctx, identsdk.CreateOrganisationRequest{
		Name:        "Acme",
		Description: "widgets",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.OrgID)
	require.Equal(t, "Acme", created.Name)

	// Detail view round-trips the created organisation.
	got, err := owner.GetOrganisation(ctx, created.OrgID)
	require.NoError(t, err)
	require.Equal(t, created.OrgID, got.OrgID)
	require.Equal(t, "widgets", got.Description)

	// List now has the default org plus Acme.
	orgs, err := owner.ListOrganisations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 2)
}

func TestE2EOrganisationVisibilityScoped(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	owner := mustRegister(t, client, "owner@example.com")
	outsider := mustRegister(t, client, "outsider@example.com")

	created, err := owner.CreateOrganisation(ctx, identsdk.CreateOrganisationRequest{Name: "Acme"})
	require.NoError(t, err)

	// A non-member gets the same 404 as a missing organisation.
	_, err = outsider.GetOrganisation(ctx, created.OrgID)
	existing := assertAPIError(t, err, http.StatusNotFound, "non-member access")

	_, err = outsider.GetOrganisation(ctx, "01J00000000000000000000000")
	missing := assertAPIError(t, err, http.StatusNotFound, "missing organisation")
	require.Equal(t, existing.Message, missing.Message)

	// And the outsider's list is unaffected.
	orgs, err := outsider.ListOrganisations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
}

func TestE2EAddMember(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	owner := mustRegister(t, client, "owner@example.com")
	invitee := mustRegister(t, client, "invitee@example.com")

	created, err := owner.CreateOrganisation(ctx, identsdk.CreateOrganisationRequest{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, owner.AddMember(ctx, created.OrgID, invitee.User().UserID))

	// The invitee can now see the organisation.
	got, err := invitee.GetOrganisation(ctx, created.OrgID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)

	// Adding again is a conflict.
	err = owner.AddMember(ctx, created.OrgID, invitee.User().UserID)
	assertAPIError(t, err, http.StatusConflict, "duplicate membership")

	// Unknown target user is a 404.
	err = owner.AddMember(ctx, created.OrgID, "01J00000000000000000000000")
	apiErr := assertAPIError(t, err, http.StatusNotFound, "unknown user")
	require.Equal(t, "User not found", apiErr.Message)

	// A non-member caller cannot add anyone.
	stranger := mustRegister(t, client, "stranger@example.com")
	err = stranger.AddMember(ctx, created.OrgID, stranger.User().UserID)
	assertAPIError(t, err, http.StatusNotFound, "non-member caller")
}

func TestE2EUserDetails(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	alice := mustRegister(t, client, "alice@example.com")
	bob := mustRegister(t, client, "bob@example.com")

	// Callers can fetch their own record and other existing users.
	self, err := alice.GetUser(ctx, alice.User().UserID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", self.Email)

	other, err := alice.GetUser(ctx, bob.User().UserID)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", other.Email)

	_, err = alice.GetUser(ctx, "01J00000000000000000000000")
	assertAPIError(t, err, http.StatusNotFound, "missing user")
}
