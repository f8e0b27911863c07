// Package article provides HTTP handlers for article endpoints: listing,
// fetching, creating, updating and deleting articles.
package article

import (
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// AuthorDTO carries the limited author fields exposed over the API.
type AuthorDTO struct {
	Username string `json:"username" example:"sue"`
}

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID             int64     `json:"id" example:"1"`
	Title          string    `json:"title" example:"Council Approves Budget"`
	Content        string    `json:"content" example:"The council voted..."`
	ArticleAuthor  AuthorDTO `json:"article_author"`
	EditorApproved bool      `json:"editor_approved" example:"false"`
	Independent    bool      `json:"independent" example:"true"`
}

func toDTO(a *entity.Article, authorUsername string) DTO {
	return DTO{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		ArticleAuthor:  AuthorDTO{Username: authorUsername},
		EditorApproved: a.EditorApproved,
		Independent:    a.Independent,
	}
}

func toDTOs(items []repository.ArticleWithAuthor) []DTO {
	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item.Article, item.AuthorUsername))
	}
	return dtos
}

// mutationResponse is the body for successful writes. Warnings list
// notification deliveries that failed; the write itself succeeded.
type mutationResponse struct {
	Article  DTO      `json:"article"`
	Warnings []string `json:"warnings,omitempty"`
}
