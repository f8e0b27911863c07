package entity

import "time"

// Article represents a news article authored by a journalist or editor.
// Attribution is derived from the author: content by a publisher employee is
// publisher content unless Independent is set. Publisher content becomes
// visible to subscribers once an editor approves it; independent content is
// visible to the author's subscribers immediately and never passes through
// approval.
type Article struct {
	ID             int64
	Title          string
	Content        string
	AuthorID       int64
	EditorApproved bool
	Independent    bool
	CreatedAt      time.Time
}

// Validate validates the Article entity fields.
func (a *Article) Validate() error {
	return validateContent(a.Title, a.AuthorID)
}

// validateContent holds the validation rules shared by articles and newsletters.
func validateContent(title string, authorID int64) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: "is too long"}
	}
	if authorID <= 0 {
		return &ValidationError{Field: "author", Message: "is required"}
	}
	return nil
}
