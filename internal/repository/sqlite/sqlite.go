package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"physmap/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.KVStore using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.KVStore = (*Repository)(nil)

// New opens (or creates) the database at dbPath and migrates the schema
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive and serialises writers
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS quarantine (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		reason TEXT NOT NULL,
		quarantined_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quarantine_key ON quarantine(key);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Get retrieves the value stored under key
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put inserts or overwrites the value under key
func (r *Repository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to put key %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (r *Repository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Quarantine copies the current value of key into the quarantine table and
// removes it from kv in one transaction
func (r *Repository) Quarantine(ctx context.Context, key, reason string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var value string
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("key %s not found", key)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query key %s: %w", key, err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO quarantine (key, value, reason, quarantined_at)
		VALUES (?, ?, ?, ?)
	`, key, value, reason, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert quarantine record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read quarantine id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return 0, fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// ListQuarantined returns every quarantined record, newest first
func (r *Repository) ListQuarantined(ctx context.Context) ([]repository.QuarantinedRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, value, reason, quarantined_at
		FROM quarantine ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quarantine: %w", err)
	}
	defer rows.Close()

	var records []repository.QuarantinedRecord
	for rows.Next() {
		var rec repository.QuarantinedRecord
		if err := rows.Scan(&rec.ID, &rec.Key, &rec.Value, &rec.Reason, &rec.QuarantinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quarantine record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quarantine: %w", err)
	}
	return records, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
