package article

import (
	"net/http"

	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type ListHandler struct{ Svc *artUC.Service }

// ServeHTTP lists all articles ordered by title.
//
// @Summary      List articles
// @Description  Returns every article with author attribution, ordered by title.
// @Tags         articles
// @Produce      json
// @Success      200 {array} DTO "Articles"
// @Failure      500 {string} string "Server error"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(items))
}
