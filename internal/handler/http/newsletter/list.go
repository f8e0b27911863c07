package newsletter

import (
	"net/http"

	"newsdesk/internal/handler/http/respond"
	nlUC "newsdesk/internal/usecase/newsletter"
)

type ListHandler struct{ Svc *nlUC.Service }

// ServeHTTP lists all newsletters ordered by title.
//
// @Summary      List newsletters
// @Tags         newsletters
// @Produce      json
// @Success      200 {array} DTO "Newsletters"
// @Failure      500 {string} string "Server error"
// @Router       /newsletters [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(items))
}
