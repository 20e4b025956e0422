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

type RegisterHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Creates a user account together with their default organisation and returns an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	identsdk.AuthResponse		"status, message, data (accessToken, user)"
//	@Failure		400		{object}	identsdk.APIError			"Unreadable request body"
//	@Failure		422		{object}	identsdk.APIError			"Field validation errors"
//	@Failure		500		{object}	identsdk.APIError			"Internal server error"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrBadRequest.WriteError(w)
		return
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		identsdk.ErrRegistrationFailed.WithErrors(fieldErrs).WriteError(w)
		return
	}

	user, token, err := h.AccountService.Register(ctx, service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			identsdk.ErrRegistrationFailed.WithErrors(map[string][]string{
				"email": {"user with this email already exists"},
			}).WriteError(w)
			return
		}
		log.Error("registration failed", "err", err)
		identsdk.ErrInternal.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.AuthResponse{
		Status:  "success",
		Message: "Registration successful",
		Data: identsdk.AuthData{
			AccessToken: token,
			User: identsdk.UserPayload{
				UserID:    user.ID,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Email:     user.Email,
				Phone:     user.Phone,
			},
		},
	})
}
