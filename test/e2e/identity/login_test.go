package identity_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/stretchr/testify/require"
)

func TestE2ELogin(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	registered := mustRegister(t, client, "john@example.com")

	session, err := client.Login(ctx, "john@example.com", "password")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken())
	require.Equal(t, registered.User().UserID, session.User().UserID)

	// The fresh token works against protected routes.
	orgs, err := session.ListOrganisations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
}

func TestE2ELoginFailuresAreUniform(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	mustRegister(t, client, "john@example.com")

	_, wrongPassErr := client.Login(ctx, "john@example.com", "wrong")
	wrongPass := assertAPIError(t, wrongPassErr, http.StatusUnauthorized, "wrong password")

	_, unknownErr := client.Login(ctx, "nobody@example.com", "password")
	unknown := assertAPIError(t, unknownErr, http.StatusUnauthorized, "unknown email")

	// The two failures are indistinguishable.
	require.Equal(t, wrongPass.Status, unknown.Status)
	require.Equal(t, wrongPass.Message, unknown.Message)
	require.Equal(t, "Authentication failed", unknown.Message)
}

func TestE2EProtectedRoutesRejectBadTokens(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewClient(baseURL)
	ctx := context.Background()

	mustRegister(t, client, "john@example.com")

	bogus := client.NewSessionFromToken("not-a-token")
	_, err := bogus.ListOrganisations(ctx)
	assertAPIError(t, err, http.StatusUnauthorized, "bogus token")
}
