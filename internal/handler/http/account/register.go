package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/respond"
	accUC "newsdesk/internal/usecase/account"
)

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
	PublisherName   string `json:"publisher_name"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type RegisterHandler struct{ Svc *accUC.Service }

// ServeHTTP registers a new account. Journalists and editors must name a
// publisher, which is created on first use.
//
// @Summary      Register account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account body registerRequest true "Account details"
// @Success      201 {object} registerResponse "Created account"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      409 {string} string "Username already taken"
// @Router       /auth/register [post]
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.Svc.Register(r.Context(), accUC.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
		PublisherName:   req.PublisherName,
	})
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, accUC.ErrUsernameTaken) {
			code = http.StatusConflict
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}
