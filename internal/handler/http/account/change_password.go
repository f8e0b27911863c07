package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	accUC "newsdesk/internal/usecase/account"
)

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordHandler struct{ Svc *accUC.Service }

// ServeHTTP changes the authenticated user's password.
//
// @Summary      Change password
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        passwords body changePasswordRequest true "Old and new password"
// @Success      200 {object} map[string]string "Confirmation message"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Old password is incorrect"
// @Router       /auth/change_password [post]
func (h ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.ChangePassword(r.Context(), actor, req.OldPassword, req.NewPassword); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, accUC.ErrWrongPassword) {
			code = http.StatusForbidden
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
