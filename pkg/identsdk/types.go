package identsdk

import (
	"net/mail"
	"strings"

	"github.com/lumahq/identity/pkg/jwtx"
)

// ============================================================================
// Requests
// ============================================================================

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

// Validate returns field-keyed validation messages, or an empty map when
// the request is acceptable. Phone is the only optional field. The
// password bar is deliberately just "non-empty".
func (r RegisterRequest) Validate() map[string][]string {
	errs := map[string][]string{}

	if strings.TrimSpace(r.FirstName) == "" {
		errs["firstName"] = append(errs["firstName"], "This field is required.")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs["lastName"] = append(errs["lastName"], "This field is required.")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = append(errs["email"], "This field is required.")
	} else if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		errs["email"] = append(errs["email"], "Enter a valid email address.")
	}
	if r.Password == "" {
		errs["password"] = append(errs["password"], "This field is required.")
	}

	return errs
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateOrganisationRequest is the body of POST /api/organisations.
type CreateOrganisationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate returns field-keyed validation messages.
func (r CreateOrganisationRequest) Validate() map[string][]string {
	errs := map[string][]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = append(errs["name"], "This field is required.")
	}
	return errs
}

// AddMemberRequest is the body of POST /api/organisations/{orgId}/users.
type AddMemberRequest struct {
	UserID string `json:"userId"`
}

// ============================================================================
// Responses
// ============================================================================

// UserPayload is the public shape of a user record. The password hash is
// never part of it.
type UserPayload struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrganisationPayload is the public shape of an organisation record.
type OrganisationPayload struct {
	OrgID       string `json:"orgId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AuthData is the payload of successful register and login responses.
type AuthData struct {
	AccessToken string      `json:"accessToken"`
	User        UserPayload `json:"user"`
}

// AuthResponse is the full envelope of a successful register or login.
type AuthResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    AuthData `json:"data"`
}

// UserResponse is the envelope of GET /api/users/{userId}.
type UserResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    UserPayload `json:"data"`
}

// OrganisationListResponse is the envelope of GET /api/organisations.
type OrganisationListResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Organisations []OrganisationPayload `json:"organisations"`
	} `json:"data"`
}

// OrganisationResponse is the envelope of GET /api/organisations/{orgId}.
type OrganisationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Organisation OrganisationPayload `json:"organisation"`
	} `json:"data"`
}

// CreateOrganisationResponse is the envelope of POST /api/organisations.
// Unlike the detail view, the payload sits directly under data.
type CreateOrganisationResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    OrganisationPayload `json:"data"`
}

// MessageResponse is an envelope with no data payload, used by
// AddMember.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the body of /livez and /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse contains the JSON Web Key Set.
type JWKSResponse jwtx.JWKS
