package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"

	"github.com/lib/pq"
)

type NewsletterRepo struct{ db *sql.DB }

func NewNewsletterRepo(db *sql.DB) repository.NewsletterRepository {
	return &NewsletterRepo{db: db}
}

// scanNewsletterWithAuthor is a helper function to scan a newsletter row
// joined with its author's username.
func scanNewsletterWithAuthor(rows *sql.Rows) (repository.NewsletterWithAuthor, error) {
	var newsletter entity.Newsletter
	var authorUsername string
	if err := rows.Scan(
		&newsletter.ID, &newsletter.Title, &newsletter.Content, &newsletter.AuthorID,
		&newsletter.EditorApproved, &newsletter.Independent, &newsletter.CreatedAt,
		&authorUsername,
	); err != nil {
		return repository.NewsletterWithAuthor{}, err
	}
	return repository.NewsletterWithAuthor{
		Newsletter:     &newsletter,
		AuthorUsername: authorUsername,
	}, nil
}

func (repo *NewsletterRepo) List(ctx context.Context) ([]repository.NewsletterWithAuthor, error) {
	defer track("newsletter_list")()

	const query = `
SELECT n.id, n.title, n.content, n.author_id, n.editor_approved, n.independent, n.created_at, u.username AS author_username
FROM newsletters n
INNER JOIN users u ON n.author_id = u.id
ORDER BY n.title ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]repository.NewsletterWithAuthor, 0, 100)
	for rows.Next() {
		item, err := scanNewsletterWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		newsletters = append(newsletters, item)
	}
	return newsletters, rows.Err()
}

func (repo *NewsletterRepo) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	defer track("newsletter_get")()

	const query = `
SELECT id, title, content, author_id, editor_approved, independent, created_at
FROM newsletters
WHERE id = $1
LIMIT 1`
	var newsletter entity.Newsletter
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&newsletter.ID, &newsletter.Title, &newsletter.Content, &newsletter.AuthorID,
		&newsletter.EditorApproved, &newsletter.Independent, &newsletter.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &newsletter, nil
}

func (repo *NewsletterRepo) GetWithAuthor(ctx context.Context, id int64) (*entity.Newsletter, string, error) {
	defer track("newsletter_get_with_author")()

	const query = `
SELECT n.id, n.title, n.content, n.author_id, n.editor_approved, n.independent, n.created_at, u.username AS author_username
FROM newsletters n
INNER JOIN users u ON n.author_id = u.id
WHERE n.id = $1
LIMIT 1`
	var newsletter entity.Newsletter
	var authorUsername string
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&newsletter.ID, &newsletter.Title, &newsletter.Content, &newsletter.AuthorID,
		&newsletter.EditorApproved, &newsletter.Independent, &newsletter.CreatedAt,
		&authorUsername,
	)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("GetWithAuthor: %w", err)
	}
	return &newsletter, authorUsername, nil
}

func (repo *NewsletterRepo) Create(ctx context.Context, newsletter *entity.Newsletter) error {
	defer track("newsletter_create")()

	const query = `
INSERT INTO newsletters (title, content, author_id, editor_approved, independent)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		newsletter.Title, newsletter.Content, newsletter.AuthorID,
		newsletter.EditorApproved, newsletter.Independent,
	).Scan(&newsletter.ID, &newsletter.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsletterRepo) Update(ctx context.Context, newsletter *entity.Newsletter) error {
	defer track("newsletter_update")()

	const query = `
UPDATE newsletters SET
       title           = $1,
       content         = $2,
       editor_approved = $3,
       independent     = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query,
		newsletter.Title, newsletter.Content,
		newsletter.EditorApproved, newsletter.Independent, newsletter.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *NewsletterRepo) Delete(ctx context.Context, id int64) error {
	defer track("newsletter_delete")()

	const query = `DELETE FROM newsletters WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *NewsletterRepo) ListApprovedByPublishers(ctx context.Context, publisherIDs []int64) ([]repository.NewsletterWithAuthor, error) {
	defer track("newsletter_list_approved_by_publishers")()

	if len(publisherIDs) == 0 {
		return []repository.NewsletterWithAuthor{}, nil
	}
	const query = `
SELECT n.id, n.title, n.content, n.author_id, n.editor_approved, n.independent, n.created_at, u.username AS author_username
FROM newsletters n
INNER JOIN users u ON n.author_id = u.id
WHERE n.editor_approved = TRUE
AND u.publisher_id = ANY($1)
ORDER BY n.title ASC`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(publisherIDs))
	if err != nil {
		return nil, fmt.Errorf("ListApprovedByPublishers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]repository.NewsletterWithAuthor, 0, 100)
	for rows.Next() {
		item, err := scanNewsletterWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListApprovedByPublishers: Scan: %w", err)
		}
		newsletters = append(newsletters, item)
	}
	return newsletters, rows.Err()
}

func (repo *NewsletterRepo) ListIndependentByAuthors(ctx context.Context, authorIDs []int64) ([]repository.NewsletterWithAuthor, error) {
	defer track("newsletter_list_independent_by_authors")()

	if len(authorIDs) == 0 {
		return []repository.NewsletterWithAuthor{}, nil
	}
	const query = `
SELECT n.id, n.title, n.content, n.author_id, n.editor_approved, n.independent, n.created_at, u.username AS author_username
FROM newsletters n
INNER JOIN users u ON n.author_id = u.id
WHERE n.independent = TRUE
AND n.author_id = ANY($1)
ORDER BY n.title ASC`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("ListIndependentByAuthors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]repository.NewsletterWithAuthor, 0, 100)
	for rows.Next() {
		item, err := scanNewsletterWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListIndependentByAuthors: Scan: %w", err)
		}
		newsletters = append(newsletters, item)
	}
	return newsletters, rows.Err()
}
