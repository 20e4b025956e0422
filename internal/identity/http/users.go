package http

import (
	"errors"
	"net/http"

	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/pkg/httpx"
	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/lumahq/identity/pkg/slogx"
)

type UserDetailHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Get user details
//	@Description	Returns the public record of a user. Any authenticated caller may look up any existing user.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	path		string					true	"User ID"
//	@Success		200		{object}	identsdk.UserResponse	"status, message, data (user details)"
//	@Failure		401		{object}	identsdk.APIError		"Invalid or missing access token"
//	@Failure		404		{object}	identsdk.APIError		"User not found"
//	@Failure		500		{object}	identsdk.APIError		"Internal server error"
//	@Router			/api/users/{userId} [get].
func (h *UserDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("userId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			identsdk.ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("failed to load user", "err", err)
		identsdk.ErrInternal.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.UserResponse{
		Status:  "success",
		Message: "User details retrieved",
		Data: identsdk.UserPayload{
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Phone:     user.Phone,
		},
	})
}
