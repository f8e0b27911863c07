package newsletter

import (
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

type DeleteHandler struct{ Svc *nlUC.Service }

// ServeHTTP deletes a newsletter. Allowed for the author and for editors.
//
// @Summary      Delete newsletter
// @Tags         newsletters
// @Security     BearerAuth
// @Param        id path int true "Newsletter ID"
// @Success      204 "No Content"
// @Failure      400 {string} string "Bad request - invalid ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - not the author or an editor"
// @Failure      404 {string} string "Newsletter not found"
// @Router       /newsletters/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, nlUC.ErrNewsletterNotFound):
			code = http.StatusNotFound
		case errors.Is(err, nlUC.ErrNotAllowed):
			code = http.StatusForbidden
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
