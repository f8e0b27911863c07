package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

type CreateHandler struct{ Svc *nlUC.Service }

// ServeHTTP creates a newsletter. The publish-as decision works exactly as
// it does for articles.
//
// @Summary      Create newsletter
// @Tags         newsletters
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        newsletter body object true "Newsletter fields"
// @Success      201 {object} mutationResponse "Created newsletter plus notification warnings"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Router       /newsletters [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		PublishAs string `json:"publish_as"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}

	nl, warnings, err := h.Svc.Create(r.Context(), actor, nlUC.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		PublishAs: req.PublishAs,
	})
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mutationResponse{
		Newsletter: toDTO(nl, actor.Username),
		Warnings:   warnings,
	})
}
