package subscription

import (
	"net/http"

	subUC "newsdesk/internal/usecase/subscription"
)

// Register wires the subscription routes onto mux.
func Register(mux *http.ServeMux, svc *subUC.Service) {
	mux.Handle("GET /subscriptions", GetHandler{svc})
	mux.Handle("PUT /subscriptions", ReplaceHandler{svc})
}
