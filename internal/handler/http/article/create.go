package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP creates an article.
//
// @Summary      Create article
// @Description  Writes a new article. Authors employed by a publisher choose between publisher-attributed and independent publication via publish_as; independent publication notifies the author's subscribers immediately.
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body object true "Article fields"
// @Success      201 {object} mutationResponse "Created article plus notification warnings"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - role may not publish"
// @Router       /articles [post]
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

	art, warnings, err := h.Svc.Create(r.Context(), actor, artUC.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		PublishAs: req.PublishAs,
	})
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mutationResponse{
		Article:  toDTO(art, actor.Username),
		Warnings: warnings,
	})
}
