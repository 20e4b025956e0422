package service

import (
	"time"

	"github.com/lumahq/identity/internal/identity/domain"
	"github.com/lumahq/identity/pkg/jwtx"
)

// TokenService mints signed bearer tokens for authenticated users.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	AccessTTL  time.Duration
}

// Issue signs a short-lived access token bound to the user's identity.
func (s *TokenService) Issue(user domain.User) (string, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		user.ID,
		ttl,
		s.Issuer,
		user.Email,
		user.FirstName,
		user.LastName,
		time.Now().UTC(),
	)

	return s.KeyManager.GetSigner().Sign(claims)
}
