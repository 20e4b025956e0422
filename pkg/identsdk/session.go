package identsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Session is an authenticated handle on the identity API. Tokens do not
// refresh; build a new session via Client.Login when one expires.
type Session struct {
	client      *Client
	accessToken string
	user        UserPayload
}

func newSession(client *Client, data AuthData) *Session {
	return &Session{
		client:      client,
		accessToken: data.AccessToken,
		user:        data.User,
	}
}

// AccessToken returns the session's bearer token.
func (s *Session) AccessToken() string { return s.accessToken }

// User returns the user payload captured at register or login time.
func (s *Session) User() UserPayload { return s.user }

// GetUser fetches a user record by id.
func (s *Session) GetUser(ctx context.Context, userID string) (UserPayload, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet,
		"/api/users/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return UserPayload{}, err
	}

	var userResp UserResponse
	if err := decodeJSON(resp, &userResp, http.StatusOK); err != nil {
		return UserPayload{}, err
	}
	return userResp.Data, nil
}

// ListOrganisations returns every organisation the caller belongs to.
func (s *Session) ListOrganisations(ctx context.Context) ([]OrganisationPayload, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/organisations", nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp OrganisationListResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}
	return listResp.Data.Organisations, nil
}

// GetOrganisation fetches one organisation the caller is a member of.
func (s *Session) GetOrganisation(ctx context.Context, orgID string) (OrganisationPayload, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet,
		"/api/organisations/"+url.PathEscape(orgID), nil, nil)
	if err != nil {
		return OrganisationPayload{}, err
	}

	var orgResp OrganisationResponse
	if err := decodeJSON(resp, &orgResp, http.StatusOK); err != nil {
		return OrganisationPayload{}, err
	}
	return orgResp.Data.Organisation, nil
}

// CreateOrganisation creates an organisation with the caller as its
// first member.
func (s *Session) CreateOrganisation(ctx context.Context, req CreateOrganisationRequest) (OrganisationPayload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return OrganisationPayload{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/organisations",
		bytes.NewReader(body), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return OrganisationPayload{}, err
	}

	var createResp CreateOrganisationResponse
	if err := decodeJSON(resp, &createResp, http.StatusCreated); err != nil {
		return OrganisationPayload{}, err
	}
	return createResp.Data, nil
}

// AddMember adds a user to an organisation the caller is a member of.
func (s *Session) AddMember(ctx context.Context, orgID, userID string) error {
	body, err := json.Marshal(AddMemberRequest{UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/api/organisations/"+url.PathEscape(orgID)+"/users",
		bytes.NewReader(body), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return err
	}

	var msgResp MessageResponse
	return decodeJSON(resp, &msgResp, http.StatusOK)
}
