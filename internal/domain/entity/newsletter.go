package entity

import "time"

// Newsletter represents a newsletter authored by a journalist or editor.
// It follows the same attribution and approval lifecycle as Article.
type Newsletter struct {
	ID             int64
	Title          string
	Content        string
	AuthorID       int64
	EditorApproved bool
	Independent    bool
	CreatedAt      time.Time
}

// Validate validates the Newsletter entity fields.
func (n *Newsletter) Validate() error {
	return validateContent(n.Title, n.AuthorID)
}
