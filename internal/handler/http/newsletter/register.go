package newsletter

import (
	"net/http"

	nlUC "newsdesk/internal/usecase/newsletter"
)

// Register wires the newsletter routes onto mux.
func Register(mux *http.ServeMux, svc *nlUC.Service) {
	mux.Handle("GET /newsletters", ListHandler{svc})
	mux.Handle("GET /newsletters/", GetHandler{svc})

	mux.Handle("POST /newsletters", CreateHandler{svc})
	mux.Handle("PUT /newsletters/", UpdateHandler{svc})
	mux.Handle("DELETE /newsletters/", DeleteHandler{svc})
}
