package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type PublisherRepo struct{ db *sql.DB }

func NewPublisherRepo(db *sql.DB) repository.PublisherRepository {
	return &PublisherRepo{db: db}
}

func (repo *PublisherRepo) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	defer track("publisher_get")()

	const query = `
SELECT id, name, created_at
FROM publishers
WHERE id = $1
LIMIT 1`
	var publisher entity.Publisher
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&publisher.ID, &publisher.Name, &publisher.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &publisher, nil
}

func (repo *PublisherRepo) GetByName(ctx context.Context, name string) (*entity.Publisher, error) {
	defer track("publisher_get_by_name")()

	const query = `
SELECT id, name, created_at
FROM publishers
WHERE name = $1
LIMIT 1`
	var publisher entity.Publisher
	err := repo.db.QueryRowContext(ctx, query, name).Scan(
		&publisher.ID, &publisher.Name, &publisher.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByName: %w", err)
	}
	return &publisher, nil
}

func (repo *PublisherRepo) List(ctx context.Context) ([]*entity.Publisher, error) {
	defer track("publisher_list")()

	const query = `
SELECT id, name, created_at
FROM publishers
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	publishers := make([]*entity.Publisher, 0, 50)
	for rows.Next() {
		var publisher entity.Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name, &publisher.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		publishers = append(publishers, &publisher)
	}
	return publishers, rows.Err()
}

func (repo *PublisherRepo) Create(ctx context.Context, publisher *entity.Publisher) error {
	defer track("publisher_create")()

	const query = `
INSERT INTO publishers (name)
VALUES ($1)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query, publisher.Name).Scan(
		&publisher.ID, &publisher.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) Delete(ctx context.Context, id int64) error {
	defer track("publisher_delete")()

	const query = `DELETE FROM publishers WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}
