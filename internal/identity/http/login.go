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

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticates with email and password and returns an access token
//	@Description	Unknown email, wrong password, and deactivated accounts all produce the same 401 response
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	identsdk.AuthResponse	"status, message, data (accessToken, user)"
//	@Failure		401		{object}	identsdk.APIError		"Authentication failed"
//	@Failure		500		{object}	identsdk.APIError		"Internal server error"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		identsdk.ErrBadRequest.WriteError(w)
		return
	}

	user, token, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			identsdk.ErrAuthenticationFailed.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		identsdk.ErrInternal.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.AuthResponse{
		Status:  "success",
		Message: "Login successful",
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
