package newsletter

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/article"
	"newsdesk/internal/usecase/notify"
)

// CreateInput represents the input parameters for writing a new newsletter.
type CreateInput struct {
	Title   string
	Content string

	// PublishAs selects publisher-attributed or independent publication.
	// Empty defaults to independent.
	PublishAs string
}

// UpdateInput represents the input parameters for updating an existing newsletter.
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

// Service provides newsletter management use cases.
type Service struct {
	Repo   repository.NewsletterRepository
	Users  repository.UserRepository
	Notify Notifier
}

// List retrieves all newsletters with author attribution, ordered by title.
func (s *Service) List(ctx context.Context) ([]repository.NewsletterWithAuthor, error) {
	newsletters, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	return newsletters, nil
}

// Get retrieves a single newsletter by its ID.
// Returns ErrInvalidNewsletterID if the ID is not positive.
// Returns ErrNewsletterNotFound if the newsletter does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	if id <= 0 {
		return nil, ErrInvalidNewsletterID
	}

	newsletter, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if newsletter == nil {
		return nil, ErrNewsletterNotFound
	}
	return newsletter, nil
}

// GetWithAuthor retrieves a single newsletter along with its author's username.
func (s *Service) GetWithAuthor(ctx context.Context, id int64) (*entity.Newsletter, string, error) {
	if id <= 0 {
		return nil, "", ErrInvalidNewsletterID
	}

	newsletter, username, err := s.Repo.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get newsletter with author: %w", err)
	}
	if newsletter == nil {
		return nil, "", ErrNewsletterNotFound
	}
	return newsletter, username, nil
}

// Create writes a new newsletter on behalf of the acting user.
// The publish-as decision works exactly as it does for articles.
//
// Returns the saved newsletter plus warnings for any notifications that failed.
func (s *Service) Create(ctx context.Context, actor *entity.User, in CreateInput) (*entity.Newsletter, []string, error) {
	if in.PublishAs != "" && in.PublishAs != article.PublishAsPublisher && in.PublishAs != article.PublishAsIndependent {
		return nil, nil, &entity.ValidationError{Field: "publish_as", Message: "must be 'publisher' or 'independent'"}
	}

	nl := &entity.Newsletter{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  actor.ID,
		CreatedAt: time.Now(),
	}

	publisherAttributed := actor.HasPublisher() && in.PublishAs == article.PublishAsPublisher
	nl.Independent = !publisherAttributed

	if err := nl.Validate(); err != nil {
		return nil, nil, err
	}

	if err := s.Repo.Create(ctx, nl); err != nil {
		return nil, nil, fmt.Errorf("create newsletter: %w", err)
	}
	metrics.RecordPublicationCreated("newsletter", nl.Independent)

	var warnings []string
	if nl.Independent {
		pub := notify.Publication{Kind: notify.KindNewsletter, Title: nl.Title, Content: nl.Content}
		warnings = s.Notify.IndependentPublished(ctx, pub, actor)
	}

	return nl, warnings, nil
}

// Update modifies an existing newsletter with the provided input.
// Only non-nil fields in the input will be updated. The author and editors
// may change title and content; only editors may change the approval flag.
// Flipping approval from false to true notifies the publisher's subscribers
// exactly once.
func (s *Service) Update(ctx context.Context, actor *entity.User, in UpdateInput) (*entity.Newsletter, []string, error) {
	if in.ID <= 0 {
		return nil, nil, ErrInvalidNewsletterID
	}

	nl, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get newsletter: %w", err)
	}
	if nl == nil {
		return nil, nil, ErrNewsletterNotFound
	}

	if actor.ID != nl.AuthorID && !actor.Role.CanApprove() {
		return nil, nil, ErrNotAllowed
	}

	wasApproved := nl.EditorApproved

	if in.Title != nil {
		nl.Title = *in.Title
	}
	if in.Content != nil {
		nl.Content = *in.Content
	}
	if in.EditorApproved != nil && *in.EditorApproved != nl.EditorApproved {
		if !actor.Role.CanApprove() {
			return nil, nil, ErrApprovalRequiresEditor
		}
		nl.EditorApproved = *in.EditorApproved
	}

	if err := nl.Validate(); err != nil {
		return nil, nil, err
	}

	if err := s.Repo.Update(ctx, nl); err != nil {
		return nil, nil, fmt.Errorf("update newsletter: %w", err)
	}

	var warnings []string
	if !wasApproved && nl.EditorApproved {
		metrics.RecordPublicationApproved("newsletter")
		author, err := s.Users.Get(ctx, nl.AuthorID)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not load author for notifications: %v", err))
		} else if author != nil {
			pub := notify.Publication{Kind: notify.KindNewsletter, Title: nl.Title, Content: nl.Content}
			warnings = append(warnings, s.Notify.Approved(ctx, pub, author)...)
		}
	}

	return nl, warnings, nil
}

// Delete removes a newsletter. The author and editors may delete.
func (s *Service) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if id <= 0 {
		return ErrInvalidNewsletterID
	}

	nl, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get newsletter: %w", err)
	}
	if nl == nil {
		return ErrNewsletterNotFound
	}

	if actor.ID != nl.AuthorID && !actor.Role.CanApprove() {
		return ErrNotAllowed
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete newsletter: %w", err)
	}
	metrics.RecordPublicationDeleted("newsletter")
	return nil
}
