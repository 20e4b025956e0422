package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/pkg/httpx"
	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/lumahq/identity/pkg/slogx"
)

type AddMemberHandler struct {
	OrganisationService *service.OrganisationService
}

// ServeHTTP godoc
//
//	@Summary		Add user to organisation
//	@Description	Grants a user membership of an organisation the caller belongs to
//	@Tags			Organisation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			orgId	path		string						true	"Organisation ID"
//	@Param			request	body		identsdk.AddMemberRequest	true	"Target user"
//	@Success		200		{object}	identsdk.MessageResponse	"status, message"
//	@Failure		400		{object}	identsdk.APIError			"Unreadable request body"
//	@Failure		401		{object}	identsdk.APIError			"Invalid or missing access token"
//	@Failure		404		{object}	identsdk.APIError			"Organisation or user not found"
//	@Failure		409		{object}	identsdk.APIError			"User is already a member"
//	@Failure		422		{object}	identsdk.APIError			"Field validation errors"
//	@Failure		500		{object}	identsdk.APIError			"Internal server error"
//	@Router			/api/organisations/{orgId}/users [post].
func (h *AddMemberHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrBadRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		identsdk.ErrValidation.WithErrors(map[string][]string{
			"userId": {"This field is required."},
		}).WriteError(w)
		return
	}

	err := h.OrganisationService.AddMember(ctx,
		r.PathValue("orgId"), httpx.UserIDFromContext(ctx), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			identsdk.ErrOrganisationNotFound.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			identsdk.ErrUserNotFound.WriteError(w)
		case errors.Is(err, service.ErrAlreadyMember):
			identsdk.ErrAlreadyMember.WriteError(w)
		default:
			log.Error("failed to add member", "err", err)
			identsdk.ErrInternal.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.MessageResponse{
		Status:  "success",
		Message: "User added to organisation successfully",
	})
}
