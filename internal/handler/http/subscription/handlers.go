// Package subscription exposes the reader subscription endpoints.
package subscription

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
	subUC "newsdesk/internal/usecase/subscription"
)

type optionDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type subscriptionsDTO struct {
	JournalistIDs []int64 `json:"journalist_ids"`
	PublisherIDs  []int64 `json:"publisher_ids"`
}

type getResponse struct {
	Subscriptions subscriptionsDTO `json:"subscriptions"`
	Journalists   []optionDTO      `json:"journalists"`
	Publishers    []optionDTO      `json:"publishers"`
}

// GetHandler returns the reader's current subscription sets alongside
// everything available to subscribe to.
type GetHandler struct{ Svc *subUC.Service }

// @Summary      Get subscriptions
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} getResponse "Current subscriptions and available options"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Only readers manage subscriptions"
// @Router       /subscriptions [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	subs, err := h.Svc.Get(r.Context(), actor)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, subUC.ErrReadersOnly) {
			code = http.StatusForbidden
		}
		respond.SafeError(w, code, err)
		return
	}

	opts, err := h.Svc.Options(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, getResponse{
		Subscriptions: toDTO(subs),
		Journalists:   journalistOptions(opts.Journalists),
		Publishers:    publisherOptions(opts.Publishers),
	})
}

// ReplaceHandler replaces both subscription sets wholesale. An empty list
// clears the corresponding set.
type ReplaceHandler struct{ Svc *subUC.Service }

// @Summary      Replace subscriptions
// @Tags         subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        subscriptions body subscriptionsDTO true "Complete subscription sets"
// @Success      200 {object} map[string]subscriptionsDTO "Updated subscriptions"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Only readers manage subscriptions"
// @Router       /subscriptions [put]
func (h ReplaceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req subscriptionsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err := h.Svc.Replace(r.Context(), actor, repository.Subscriptions{
		JournalistIDs: req.JournalistIDs,
		PublisherIDs:  req.PublisherIDs,
	})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, subUC.ErrReadersOnly) {
			code = http.StatusForbidden
		}
		respond.SafeError(w, code, err)
		return
	}

	// Echo back what was actually stored. Unknown or self IDs are dropped
	// by the use case, so re-read rather than trusting the request.
	subs, err := h.Svc.Get(r.Context(), actor)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]subscriptionsDTO{"subscriptions": toDTO(subs)})
}

func toDTO(subs *repository.Subscriptions) subscriptionsDTO {
	dto := subscriptionsDTO{JournalistIDs: []int64{}, PublisherIDs: []int64{}}
	if subs != nil {
		if subs.JournalistIDs != nil {
			dto.JournalistIDs = subs.JournalistIDs
		}
		if subs.PublisherIDs != nil {
			dto.PublisherIDs = subs.PublisherIDs
		}
	}
	return dto
}

func journalistOptions(journalists []*entity.User) []optionDTO {
	out := make([]optionDTO, 0, len(journalists))
	for _, j := range journalists {
		out = append(out, optionDTO{ID: j.ID, Name: j.Username})
	}
	return out
}

func publisherOptions(publishers []*entity.Publisher) []optionDTO {
	out := make([]optionDTO, 0, len(publishers))
	for _, p := range publishers {
		out = append(out, optionDTO{ID: p.ID, Name: p.Name})
	}
	return out
}
