package article

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/notify"
)

// PublishAs values accepted on creation. Authors employed by a publisher
// choose between the two; everyone else publishes independently.
const (
	PublishAsPublisher   = "publisher"
	PublishAsIndependent = "independent"
)

// CreateInput represents the input parameters for writing a new article.
type CreateInput struct {
	Title   string
	Content string

	// PublishAs selects publisher-attributed or independent publication.
	// Empty defaults to independent.
	PublishAs string
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID             int64
	Title          *string
	Content        *string
	EditorApproved *bool
}

// Notifier dispatches publication notifications and returns warnings for the
// ones that failed.
type Notifier interface {
	IndependentPublished(ctx context.Context, pub notify.Publication, author *entity.User) []string
	Approved(ctx context.Context, pub notify.Publication, author *entity.User) []string
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence
// to the repository and notifications to the notifier.
type Service struct {
	Repo   repository.ArticleRepository
	Users  repository.UserRepository
	Notify Notifier
}

// List retrieves all articles with author attribution, ordered by title.
// Returns an error if the repository operation fails.
func (s *Service) List(ctx context.Context) ([]repository.ArticleWithAuthor, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// GetWithAuthor retrieves a single article along with its author's username.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) GetWithAuthor(ctx context.Context, id int64) (*entity.Article, string, error) {
	if id <= 0 {
		return nil, "", ErrInvalidArticleID
	}

	article, username, err := s.Repo.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get article with author: %w", err)
	}
	if article == nil {
		return nil, "", ErrArticleNotFound
	}
	return article, username, nil
}

// Create writes a new article on behalf of the acting user.
//
// The publish-as decision:
//   - An author employed by a publisher who chooses "publisher" gets an
//     unapproved publisher-attributed article. Nothing is sent until an
//     editor approves it.
//   - Everyone else publishes independently. The article is live immediately
//     and subscriber notifications fire right away.
//
// Returns the saved article plus warnings for any notifications that failed.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, actor *entity.User, in CreateInput) (*entity.Article, []string, error) {
	if in.PublishAs != "" && in.PublishAs != PublishAsPublisher && in.PublishAs != PublishAsIndependent {
		return nil, nil, &entity.ValidationError{Field: "publish_as", Message: "must be 'publisher' or 'independent'"}
	}

	art := &entity.Article{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  actor.ID,
		CreatedAt: time.Now(),
	}

	// Publisher attribution only sticks when the author actually has one.
	publisherAttributed := actor.HasPublisher() && in.PublishAs == PublishAsPublisher
	art.Independent = !publisherAttributed

	if err := art.Validate(); err != nil {
		return nil, nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordPublicationCreated("article", art.Independent)

	var warnings []string
	if art.Independent {
		pub := notify.Publication{Kind: notify.KindArticle, Title: art.Title, Content: art.Content}
		warnings = s.Notify.IndependentPublished(ctx, pub, actor)
	}

	return art, warnings, nil
}

// Update modifies an existing article with the provided input.
// Only non-nil fields in the input will be updated.
//
// The author and editors may change title and content; only editors may
// change the approval flag. Flipping approval from false to true notifies the
// publisher's subscribers exactly once.
//
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
// Returns ErrNotAllowed if the actor is neither the author nor an editor.
// Returns ErrApprovalRequiresEditor if a non-editor touches the approval flag.
func (s *Service) Update(ctx context.Context, actor *entity.User, in UpdateInput) (*entity.Article, []string, error) {
	if in.ID <= 0 {
		return nil, nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, nil, ErrArticleNotFound
	}

	if actor.ID != art.AuthorID && !actor.Role.CanApprove() {
		return nil, nil, ErrNotAllowed
	}

	wasApproved := art.EditorApproved

	if in.Title != nil {
		art.Title = *in.Title
	}
	if in.Content != nil {
		art.Content = *in.Content
	}
	if in.EditorApproved != nil && *in.EditorApproved != art.EditorApproved {
		if !actor.Role.CanApprove() {
			return nil, nil, ErrApprovalRequiresEditor
		}
		art.EditorApproved = *in.EditorApproved
	}

	if err := art.Validate(); err != nil {
		return nil, nil, err
	}

	if err := s.Repo.Update(ctx, art); err != nil {
		return nil, nil, fmt.Errorf("update article: %w", err)
	}

	var warnings []string
	if !wasApproved && art.EditorApproved {
		metrics.RecordPublicationApproved("article")
		author, err := s.Users.Get(ctx, art.AuthorID)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not load author for notifications: %v", err))
		} else if author != nil {
			pub := notify.Publication{Kind: notify.KindArticle, Title: art.Title, Content: art.Content}
			warnings = append(warnings, s.Notify.Approved(ctx, pub, author)...)
		}
	}

	return art, warnings, nil
}

// Delete removes an article. The author and editors may delete.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
// Returns ErrNotAllowed if the actor is neither the author nor an editor.
func (s *Service) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}

	if actor.ID != art.AuthorID && !actor.Role.CanApprove() {
		return ErrNotAllowed
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	metrics.RecordPublicationDeleted("article")
	return nil
}
