package article

import (
	"net/http"

	artUC "newsdesk/internal/usecase/article"
)

// Register wires the article routes onto mux.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /articles", ListHandler{svc})
	mux.Handle("GET /articles/", GetHandler{svc})

	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("PUT /articles/", UpdateHandler{svc})
	mux.Handle("DELETE /articles/", DeleteHandler{svc})
}
