package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"

	"github.com/lib/pq"
)

type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// scanArticleWithAuthor is a helper function to scan an article row joined
// with its author's username.
func scanArticleWithAuthor(rows *sql.Rows) (repository.ArticleWithAuthor, error) {
	var article entity.Article
	var authorUsername string
	if err := rows.Scan(
		&article.ID, &article.Title, &article.Content, &article.AuthorID,
		&article.EditorApproved, &article.Independent, &article.CreatedAt,
		&authorUsername,
	); err != nil {
		return repository.ArticleWithAuthor{}, err
	}
	return repository.ArticleWithAuthor{
		Article:        &article,
		AuthorUsername: authorUsername,
	}, nil
}

func (repo *ArticleRepo) List(ctx context.Context) ([]repository.ArticleWithAuthor, error) {
	defer track("article_list")()

	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.editor_approved, a.independent, a.created_at, u.username AS author_username
FROM articles a
INNER JOIN users u ON a.author_id = u.id
ORDER BY a.title ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]repository.ArticleWithAuthor, 0, 100)
	for rows.Next() {
		item, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, item)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	defer track("article_get")()

	const query = `
SELECT id, title, content, author_id, editor_approved, independent, created_at
FROM articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.AuthorID,
		&article.EditorApproved, &article.Independent, &article.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) GetWithAuthor(ctx context.Context, id int64) (*entity.Article, string, error) {
	defer track("article_get_with_author")()

	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.editor_approved, a.independent, a.created_at, u.username AS author_username
FROM articles a
INNER JOIN users u ON a.author_id = u.id
WHERE a.id = $1
LIMIT 1`
	var article entity.Article
	var authorUsername string
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.AuthorID,
		&article.EditorApproved, &article.Independent, &article.CreatedAt,
		&authorUsername,
	)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("GetWithAuthor: %w", err)
	}
	return &article, authorUsername, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	defer track("article_create")()

	const query = `
INSERT INTO articles (title, content, author_id, editor_approved, independent)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.AuthorID,
		article.EditorApproved, article.Independent,
	).Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	defer track("article_update")()

	const query = `
UPDATE articles SET
       title           = $1,
       content         = $2,
       editor_approved = $3,
       independent     = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content,
		article.EditorApproved, article.Independent, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	defer track("article_delete")()

	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *ArticleRepo) ListApprovedByPublishers(ctx context.Context, publisherIDs []int64) ([]repository.ArticleWithAuthor, error) {
	defer track("article_list_approved_by_publishers")()

	if len(publisherIDs) == 0 {
		return []repository.ArticleWithAuthor{}, nil
	}
	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.editor_approved, a.independent, a.created_at, u.username AS author_username
FROM articles a
INNER JOIN users u ON a.author_id = u.id
WHERE a.editor_approved = TRUE
AND u.publisher_id = ANY($1)
ORDER BY a.title ASC`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(publisherIDs))
	if err != nil {
		return nil, fmt.Errorf("ListApprovedByPublishers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]repository.ArticleWithAuthor, 0, 100)
	for rows.Next() {
		item, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListApprovedByPublishers: Scan: %w", err)
		}
		articles = append(articles, item)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) ListIndependentByAuthors(ctx context.Context, authorIDs []int64) ([]repository.ArticleWithAuthor, error) {
	defer track("article_list_independent_by_authors")()

	if len(authorIDs) == 0 {
		return []repository.ArticleWithAuthor{}, nil
	}
	const query = `
SELECT a.id, a.title, a.content, a.author_id, a.editor_approved, a.independent, a.created_at, u.username AS author_username
FROM articles a
INNER JOIN users u ON a.author_id = u.id
WHERE a.independent = TRUE
AND a.author_id = ANY($1)
ORDER BY a.title ASC`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("ListIndependentByAuthors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]repository.ArticleWithAuthor, 0, 100)
	for rows.Next() {
		item, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListIndependentByAuthors: Scan: %w", err)
		}
		articles = append(articles, item)
	}
	return articles, rows.Err()
}
