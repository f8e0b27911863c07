package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP updates an article.
//
// @Summary      Update article
// @Description  Updates title, content or editor approval. Only the author edits content; only editors toggle approval. Flipping approval on notifies the publisher's subscribers once.
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Article ID"
// @Param        article body object true "Fields to update"
// @Success      200 {object} mutationResponse "Updated article plus notification warnings"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not the author or not an editor"
// @Failure      404 {string} string "Article not found"
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title          *string `json:"title"`
		Content        *string `json:"content"`
		EditorApproved *bool   `json:"editor_approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	_, warnings, err := h.Svc.Update(r.Context(), actor, artUC.UpdateInput{
		ID:             id,
		Title:          req.Title,
		Content:        req.Content,
		EditorApproved: req.EditorApproved,
	})
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, artUC.ErrArticleNotFound):
			code = http.StatusNotFound
		case errors.Is(err, artUC.ErrNotAllowed), errors.Is(err, artUC.ErrApprovalRequiresEditor):
			code = http.StatusForbidden
		case errors.Is(err, artUC.ErrInvalidArticleID):
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	// Re-read with the author so editors updating someone else's article
	// still return the right attribution.
	art, authorUsername, err := h.Svc.GetWithAuthor(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{
		Article:  toDTO(art, authorUsername),
		Warnings: warnings,
	})
}
