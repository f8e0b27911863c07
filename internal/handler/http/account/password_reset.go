package account

import (
	"encoding/json"
	"net/http"

	"newsdesk/internal/handler/http/respond"
	accUC "newsdesk/internal/usecase/account"
)

// resetRequestedMessage is returned whether or not the address is known, so
// the endpoint does not reveal which emails have accounts.
const resetRequestedMessage = "If accounts exist for that address, reset links have been emailed."

type resetRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	UserID      int64  `json:"uid"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ResetRequestHandler struct{ Svc *accUC.Service }

// ServeHTTP emails reset links to every account registered under an address.
//
// @Summary      Request password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body resetRequest true "Account email"
// @Success      200 {object} map[string]string "Uniform confirmation message"
// @Failure      400 {string} string "Bad request - invalid email"
// @Router       /auth/password_reset [post]
func (h ResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": resetRequestedMessage})
}

type ResetConfirmHandler struct{ Svc *accUC.Service }

// ServeHTTP sets a new password from an emailed reset token.
//
// @Summary      Confirm password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body resetConfirmRequest true "Reset token and new password"
// @Success      200 {object} map[string]string "Confirmation message"
// @Failure      400 {string} string "Bad request - invalid token or password"
// @Router       /auth/password_reset/confirm [post]
func (h ResetConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.ConfirmPasswordReset(r.Context(), req.UserID, req.Token, req.NewPassword); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "password has been reset"})
}
