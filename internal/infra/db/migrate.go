package db

import "database/sql"

// MigrateUp creates the database schema.
// Statements are idempotent so the migration can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS publishers (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// Employees keep their account when their publisher is deleted.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    role          VARCHAR(10) NOT NULL DEFAULT 'Reader',
    publisher_id  INTEGER REFERENCES publishers(id) ON DELETE SET NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT chk_users_role CHECK (role IN ('Reader', 'Journalist', 'Editor'))
)`); err != nil {
		return err
	}

	// Subscription join tables. A reader never subscribes to itself.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS journalist_subscriptions (
    reader_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    journalist_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (reader_id, journalist_id),
    CONSTRAINT chk_not_self_subscription CHECK (reader_id <> journalist_id)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS publisher_subscriptions (
    reader_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    publisher_id INTEGER NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
    PRIMARY KEY (reader_id, publisher_id)
)`); err != nil {
		return err
	}

	// Deleting an author removes their content.
	contentTables := []string{"articles", "newsletters"}
	for _, table := range contentTables {
		if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + table + ` (
    id              SERIAL PRIMARY KEY,
    title           TEXT NOT NULL,
    content         TEXT NOT NULL DEFAULT '',
    author_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    editor_approved BOOLEAN NOT NULL DEFAULT FALSE,
    independent     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
			return err
		}
	}

	indexes := []string{
		// Public listings order by title.
		`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletters_title ON newsletters(title)`,
		// Reader view joins content to authors.
		`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletters_author_id ON newsletters(author_id)`,
		// Publisher employee lookups.
		`CREATE INDEX IF NOT EXISTS idx_users_publisher_id ON users(publisher_id)`,
		// Subscriber fan-out on approval and independent publish.
		`CREATE INDEX IF NOT EXISTS idx_journalist_subscriptions_journalist ON journalist_subscriptions(journalist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_publisher_subscriptions_publisher ON publisher_subscriptions(publisher_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the schema in reverse dependency order.
// Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS newsletters`,
		`DROP TABLE IF EXISTS articles`,
		`DROP TABLE IF EXISTS publisher_subscriptions`,
		`DROP TABLE IF EXISTS journalist_subscriptions`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS publishers`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
