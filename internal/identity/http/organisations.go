package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/pkg/httpx"
	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/lumahq/identity/pkg/slogx"
)

type OrganisationsHandler struct {
	OrganisationService *service.OrganisationService
}

// HandleList godoc
//
//	@Summary		List organisations
//	@Description	Returns every organisation the caller is a member of, oldest first
//	@Tags			Organisation
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	identsdk.OrganisationListResponse	"status, message, data.organisations"
//	@Failure		401	{object}	identsdk.APIError					"Invalid or missing access token"
//	@Failure		500	{object}	identsdk.APIError					"Internal server error"
//	@Router			/api/organisations [get].
func (h *OrganisationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	orgs, err := h.OrganisationService.ListForCaller(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to list organisations", "err", err)
		identsdk.ErrInternal.WriteError(w)
		return
	}

	resp := identsdk.OrganisationListResponse{
		Status:  "success",
		Message: "Your organisations details retrieved successfully",
	}
	resp.Data.Organisations = make([]identsdk.OrganisationPayload, 0, len(orgs))
	for _, org := range orgs {
		resp.Data.Organisations = append(resp.Data.Organisations, identsdk.OrganisationPayload{
			OrgID:       org.ID,
			Name:        org.Name,
			Description: org.Description,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet godoc
//
//	@Summary		Get organisation details
//	@Description	Returns one organisation. Organisations the caller is not a member of are reported as not found.
//	@Tags			Organisation
//	@Security		BearerAuth
//	@Produce		json
//	@Param			orgId	path		string							true	"Organisation ID"
//	@Success		200		{object}	identsdk.OrganisationResponse	"status, message, data.organisation"
//	@Failure		401		{object}	identsdk.APIError				"Invalid or missing access token"
//	@Failure		404		{object}	identsdk.APIError				"Organisation not found"
//	@Failure		500		{object}	identsdk.APIError				"Internal server error"
//	@Router			/api/organisations/{orgId} [get].
func (h *OrganisationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	org, err := h.OrganisationService.Get(ctx, r.PathValue("orgId"), httpx.UserIDFromContext(ctx))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			identsdk.ErrOrganisationNotFound.WriteError(w)
			return
		}
		log.Error("failed to load organisation", "err", err)
		identsdk.ErrInternal.WriteError(w)
		return
	}

	resp := identsdk.OrganisationResponse{
		Status:  "success",
		Message: "Organisation details retrieved successfully",
	}
	resp.Data.Organisation = identsdk.OrganisationPayload{
		OrgID:       org.ID,
		Name:        org.Name,
		Description: org.Description,
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate godoc
//
//	@Summary		Create organisation
//	@Description	Creates an organisation with the caller as its first member
//	@Tags			Organisation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.CreateOrganisationRequest	true	"Organisation details"
//	@Success		201		{object}	identsdk.CreateOrganisationResponse	"status, message, data (orgId, name, description)"
//	@Failure		400		{object}	identsdk.APIError					"Unreadable request body"
//	@Failure		401		{object}	identsdk.APIError					"Invalid or missing access token"
//	@Failure		422		{object}	identsdk.APIError					"Field validation errors"
//	@Failure		500		{object}	identsdk.APIError					"Internal server error"
//	@Router			/api/organisations [post].
func (h *OrganisationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.CreateOrganisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrBadRequest.WriteError(w)
		return
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		identsdk.ErrValidation.WithErrors(fieldErrs).WriteError(w)
		return
	}

	org, err := h.OrganisationService.Create(ctx, httpx.UserIDFromContext(ctx), req.Name, req.Description)
	if err != nil {
		log.Error("failed to create organisation", "err", err)
		identsdk.ErrInternal.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.CreateOrganisationResponse{
		Status:  "success",
		Message: "Organisation created successfully",
		Data: identsdk.OrganisationPayload{
			OrgID:       org.ID,
			Name:        org.Name,
			Description: org.Description,
		},
	})
}
