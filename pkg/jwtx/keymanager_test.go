package jwtx_test

import (
	"testing"
	"time"

	"github.com/lumahq/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewEphemeralKeyManagerDefaults(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer})
	require.NoError(t, err)
	require.Equal(t, 3, km.NumSigners())
	require.True(t, km.KeySet.IsReady())
	require.Len(t, km.KeySet.PublicJWKS().Keys, 3)
}

func TestNewEphemeralKeyManagerRequiresIssuer(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
}

func TestKeyManagerRoundTrip(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  exampleIssuer,
		NumKeys: 2,
	})
	require.NoError(t, err)

	// Any signer's token must verify against the manager's own verifier.
	for i := 0; i < 10; i++ {
		signer := km.GetSigner()
		claims := jwtx.NewAccessClaims(
			"user-1", time.Minute, exampleIssuer, "a@b.c", "A", "B", time.Now().UTC())

		token, err := signer.Sign(claims)
		require.NoError(t, err)

		parsed, err := km.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", parsed.Subject)
	}
}

func TestKeyManagerClampsNumKeys(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  exampleIssuer,
		NumKeys: 99,
	})
	require.NoError(t, err)
	require.Equal(t, 10, km.NumSigners())
}
