// Package reader exposes the reader's personalized feed endpoint.
package reader

import (
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
	rvUC "newsdesk/internal/usecase/readerview"
)

type authorDTO struct {
	Username string `json:"username"`
}

type articleDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ArticleAuthor authorDTO `json:"article_author"`
}

type newsletterDTO struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	NewsletterAuthor authorDTO `json:"newsletter_author"`
}

type viewResponse struct {
	PublishersArticles     []articleDTO    `json:"publishers_articles"`
	PublishersNewsletters  []newsletterDTO `json:"publishers_newsletters"`
	JournalistsArticles    []articleDTO    `json:"journalists_articles"`
	JournalistsNewsletters []newsletterDTO `json:"journalists_newsletters"`
}

// ViewHandler serves the reader's feed of subscribed content.
type ViewHandler struct{ Svc *rvUC.Service }

// ServeHTTP builds the feed for the acting reader. Publisher sections carry
// only editor-approved content; journalist sections carry independent content.
//
// @Summary      Reader feed
// @Tags         reader
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} viewResponse "Subscribed content in four sections"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {object} map[string]string "This view is for Readers only."
// @Router       /api/reader_view [get]
func (h ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	if actor == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	view, err := h.Svc.View(r.Context(), actor)
	if err != nil {
		if errors.Is(err, rvUC.ErrReadersOnly) {
			respond.JSON(w, http.StatusForbidden, map[string]string{
				"error": "This view is for Readers only.",
			})
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, viewResponse{
		PublishersArticles:     toArticleDTOs(view.PublisherArticles),
		PublishersNewsletters:  toNewsletterDTOs(view.PublisherNewsletters),
		JournalistsArticles:    toArticleDTOs(view.JournalistArticles),
		JournalistsNewsletters: toNewsletterDTOs(view.JournalistNewsletters),
	})
}

func toArticleDTOs(items []repository.ArticleWithAuthor) []articleDTO {
	out := make([]articleDTO, 0, len(items))
	for _, it := range items {
		out = append(out, articleDTO{
			ID:            it.Article.ID,
			Title:         it.Article.Title,
			Content:       it.Article.Content,
			ArticleAuthor: authorDTO{Username: it.AuthorUsername},
		})
	}
	return out
}

func toNewsletterDTOs(items []repository.NewsletterWithAuthor) []newsletterDTO {
	out := make([]newsletterDTO, 0, len(items))
	for _, it := range items {
		out = append(out, newsletterDTO{
			ID:               it.Newsletter.ID,
			Title:            it.Newsletter.Title,
			Content:          it.Newsletter.Content,
			NewsletterAuthor: authorDTO{Username: it.AuthorUsername},
		})
	}
	return out
}
