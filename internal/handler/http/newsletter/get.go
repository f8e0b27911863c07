package newsletter

import (
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

type GetHandler struct{ Svc *nlUC.Service }

// ServeHTTP fetches a single newsletter.
//
// @Summary      Get newsletter
// @Tags         newsletters
// @Produce      json
// @Param        id path int true "Newsletter ID"
// @Success      200 {object} DTO "Newsletter"
// @Failure      400 {string} string "Invalid newsletter ID"
// @Failure      404 {string} string "Newsletter not found"
// @Router       /newsletters/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/newsletters/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	nl, authorUsername, err := h.Svc.GetWithAuthor(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, nlUC.ErrInvalidNewsletterID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, nlUC.ErrNewsletterNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(nl, authorUsername))
}
