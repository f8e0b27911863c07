package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

type UpdateHandler struct{ Svc *nlUC.Service }

// ServeHTTP updates a newsletter; approval changes are editor-only and
// flipping approval on notifies the publisher's subscribers once.
//
// @Summary      Update newsletter
// @Tags         newsletters
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Newsletter ID"
// @Param        newsletter body object true "Fields to update"
// @Success      200 {object} mutationResponse "Updated newsletter plus notification warnings"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not the author or not an editor"
// @Failure      404 {string} string "Newsletter not found"
// @Router       /newsletters/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/newsletters/")
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

	_, warnings, err := h.Svc.Update(r.Context(), actor, nlUC.UpdateInput{
		ID:             id,
		Title:          req.Title,
		Content:        req.Content,
		EditorApproved: req.EditorApproved,
	})
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, nlUC.ErrNewsletterNotFound):
			code = http.StatusNotFound
		case errors.Is(err, nlUC.ErrNotAllowed), errors.Is(err, nlUC.ErrApprovalRequiresEditor):
			code = http.StatusForbidden
		case errors.Is(err, nlUC.ErrInvalidNewsletterID):
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	nl, authorUsername, err := h.Svc.GetWithAuthor(r.Context(), id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{
		Newsletter: toDTO(nl, authorUsername),
		Warnings:   warnings,
	})
}
