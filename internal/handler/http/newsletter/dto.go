// Package newsletter provides HTTP handlers for newsletter endpoints.
// The surface mirrors the article handlers.
package newsletter

import (
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// AuthorDTO carries the limited author fields exposed over the API.
type AuthorDTO struct {
	Username string `json:"username" example:"sue"`
}

// DTO represents the JSON structure for newsletter data transfer.
type DTO struct {
	ID               int64     `json:"id" example:"1"`
	Title            string    `json:"title" example:"Weekly Digest"`
	Content          string    `json:"content" example:"This week..."`
	NewsletterAuthor AuthorDTO `json:"newsletter_author"`
	EditorApproved   bool      `json:"editor_approved" example:"false"`
	Independent      bool      `json:"independent" example:"true"`
}

func toDTO(n *entity.Newsletter, authorUsername string) DTO {
	return DTO{
		ID:               n.ID,
		Title:            n.Title,
		Content:          n.Content,
		NewsletterAuthor: AuthorDTO{Username: authorUsername},
		EditorApproved:   n.EditorApproved,
		Independent:      n.Independent,
	}
}

func toDTOs(items []repository.NewsletterWithAuthor) []DTO {
	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item.Newsletter, item.AuthorUsername))
	}
	return dtos
}

type mutationResponse struct {
	Newsletter DTO      `json:"newsletter"`
	Warnings   []string `json:"warnings,omitempty"`
}
