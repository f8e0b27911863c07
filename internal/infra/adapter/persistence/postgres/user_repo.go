package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

// scanUser is a helper function to scan a user row including the nullable
// publisher_id column.
func scanUser(rows *sql.Rows) (*entity.User, error) {
	var user entity.User
	var publisherID sql.NullInt64
	if err := rows.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &publisherID, &user.CreatedAt,
	); err != nil {
		return nil, err
	}
	if publisherID.Valid {
		user.PublisherID = &publisherID.Int64
	}
	return &user, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	defer track("user_get")()

	const query = `
SELECT id, username, email, password_hash, role, publisher_id, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var user entity.User
	var publisherID sql.NullInt64
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &publisherID, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if publisherID.Valid {
		user.PublisherID = &publisherID.Int64
	}
	return &user, nil
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	defer track("user_get_by_username")()

	const query = `
SELECT id, username, email, password_hash, role, publisher_id, created_at
FROM users
WHERE username = $1
LIMIT 1`
	var user entity.User
	var publisherID sql.NullInt64
	err := repo.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &publisherID, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	if publisherID.Valid {
		user.PublisherID = &publisherID.Int64
	}
	return &user, nil
}

func (repo *UserRepo) ListByEmail(ctx context.Context, email string) ([]*entity.User, error) {
	defer track("user_list_by_email")()

	const query = `
SELECT id, username, email, password_hash, role, publisher_id, created_at
FROM users
WHERE email = $1
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("ListByEmail: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 10)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByEmail: Scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (repo *UserRepo) ListJournalists(ctx context.Context) ([]*entity.User, error) {
	defer track("user_list_journalists")()

	const query = `
SELECT id, username, email, password_hash, role, publisher_id, created_at
FROM users
WHERE role = 'Journalist'
ORDER BY username ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListJournalists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListJournalists: Scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	defer track("user_create")()

	var publisherID sql.NullInt64
	if user.PublisherID != nil {
		publisherID = sql.NullInt64{Int64: *user.PublisherID, Valid: true}
	}

	const query = `
INSERT INTO users (username, email, password_hash, role, publisher_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role, publisherID,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	defer track("user_update_password")()

	const query = `UPDATE users SET password_hash = $1 WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdatePassword: no rows affected")
	}
	return nil
}

func (repo *UserRepo) Delete(ctx context.Context, id int64) error {
	defer track("user_delete")()

	const query = `DELETE FROM users WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *UserRepo) Subscriptions(ctx context.Context, userID int64) (*repository.Subscriptions, error) {
	defer track("user_subscriptions")()

	const journalistQuery = `
SELECT journalist_id
FROM journalist_subscriptions
WHERE reader_id = $1
ORDER BY journalist_id ASC`
	rows, err := repo.db.QueryContext(ctx, journalistQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("Subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := &repository.Subscriptions{
		JournalistIDs: make([]int64, 0, 10),
		PublisherIDs:  make([]int64, 0, 10),
	}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("Subscriptions: Scan: %w", err)
		}
		subs.JournalistIDs = append(subs.JournalistIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Subscriptions: %w", err)
	}

	const publisherQuery = `
SELECT publisher_id
FROM publisher_subscriptions
WHERE reader_id = $1
ORDER BY publisher_id ASC`
	pubRows, err := repo.db.QueryContext(ctx, publisherQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("Subscriptions: %w", err)
	}
	defer func() { _ = pubRows.Close() }()

	for pubRows.Next() {
		var id int64
		if err := pubRows.Scan(&id); err != nil {
			return nil, fmt.Errorf("Subscriptions: Scan: %w", err)
		}
		subs.PublisherIDs = append(subs.PublisherIDs, id)
	}
	return subs, pubRows.Err()
}

func (repo *UserRepo) ReplaceSubscriptions(ctx context.Context, userID int64, subs repository.Subscriptions) error {
	defer track("user_replace_subscriptions")()

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceSubscriptions: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const deleteJournalists = `DELETE FROM journalist_subscriptions WHERE reader_id = $1`
	if _, err := tx.ExecContext(ctx, deleteJournalists, userID); err != nil {
		return fmt.Errorf("ReplaceSubscriptions: %w", err)
	}
	const deletePublishers = `DELETE FROM publisher_subscriptions WHERE reader_id = $1`
	if _, err := tx.ExecContext(ctx, deletePublishers, userID); err != nil {
		return fmt.Errorf("ReplaceSubscriptions: %w", err)
	}

	// Only rows referencing an actual journalist other than the reader are
	// inserted. IDs that miss the filter are silently discarded.
	const insertJournalist = `
INSERT INTO journalist_subscriptions (reader_id, journalist_id)
SELECT $1, id FROM users
WHERE id = $2 AND role = 'Journalist' AND id <> $1
ON CONFLICT DO NOTHING`
	for _, journalistID := range subs.JournalistIDs {
		if _, err := tx.ExecContext(ctx, insertJournalist, userID, journalistID); err != nil {
			return fmt.Errorf("ReplaceSubscriptions: %w", err)
		}
	}

	const insertPublisher = `
INSERT INTO publisher_subscriptions (reader_id, publisher_id)
SELECT $1, id FROM publishers
WHERE id = $2
ON CONFLICT DO NOTHING`
	for _, publisherID := range subs.PublisherIDs {
		if _, err := tx.ExecContext(ctx, insertPublisher, userID, publisherID); err != nil {
			return fmt.Errorf("ReplaceSubscriptions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceSubscriptions: %w", err)
	}
	return nil
}

func (repo *UserRepo) ListPublisherSubscribers(ctx context.Context, publisherID int64) ([]*entity.User, error) {
	defer track("user_list_publisher_subscribers")()

	const query = `
SELECT u.id, u.username, u.email, u.password_hash, u.role, u.publisher_id, u.created_at
FROM users u
INNER JOIN publisher_subscriptions ps ON ps.reader_id = u.id
WHERE ps.publisher_id = $1
ORDER BY u.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, publisherID)
	if err != nil {
		return nil, fmt.Errorf("ListPublisherSubscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPublisherSubscribers: Scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (repo *UserRepo) ListJournalistSubscribers(ctx context.Context, journalistID int64) ([]*entity.User, error) {
	defer track("user_list_journalist_subscribers")()

	const query = `
SELECT u.id, u.username, u.email, u.password_hash, u.role, u.publisher_id, u.created_at
FROM users u
INNER JOIN journalist_subscriptions js ON js.reader_id = u.id
WHERE js.journalist_id = $1
ORDER BY u.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, journalistID)
	if err != nil {
		return nil, fmt.Errorf("ListJournalistSubscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 50)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListJournalistSubscribers: Scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
