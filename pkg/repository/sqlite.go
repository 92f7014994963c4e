package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository is the production Repository, grounded on the teacher's
// pkg/server/internal/db package: a single *sql.DB, documents stored as a
// JSON blob in a TEXT column. Unlike the teacher's INSERT OR REPLACE (which
// has no concurrency control), writes here are conditional on a version
// column so Put/Delete can enforce optimistic concurrency.
type SQLiteRepository[T any] struct {
	db    *sql.DB
	table string
}

// NewSQLiteRepository opens dbPath (creating it if absent) and ensures the
// backing table exists. table must be a valid, trusted identifier - it is
// interpolated into DDL/DML since SQLite does not allow table names as bind
// parameters.
func NewSQLiteRepository[T any](dbPath, table string) (*SQLiteRepository[T], error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("repository: open %s: %w", dbPath, err)
	}
	r := &SQLiteRepository[T]{db: db, table: table}
	if err := r.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository[T]) createTable() error {
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL DEFAULT 0,
			document TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, r.table)
	_, err := r.db.Exec(stmt)
	return err
}

func (r *SQLiteRepository[T]) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository[T]) Get(ctx context.Context, id string) (T, int64, error) {
	var zero T
	query := fmt.Sprintf(`SELECT version, document FROM %s WHERE id = ?`, r.table)

	var version int64
	var raw string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&version, &raw)
	if err == sql.ErrNoRows {
		return zero, 0, ErrNotFound
	}
	if err != nil {
		return zero, 0, fmt.Errorf("repository: get %s: %w", id, err)
	}

	var doc T
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return zero, 0, fmt.Errorf("repository: decode %s: %w", id, err)
	}
	return doc, version, nil
}

func (r *SQLiteRepository[T]) Put(ctx context.Context, id string, doc T, expectedVersion int64) (int64, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("repository: encode %s: %w", id, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var currentVersion int64
	selectQuery := fmt.Sprintf(`SELECT version FROM %s WHERE id = ?`, r.table)
	err = tx.QueryRowContext(ctx, selectQuery, id).Scan(&currentVersion)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("repository: put %s: %w", id, err)
	}

	if expectedVersion == NewDocument {
		if exists {
			return 0, ErrAlreadyExists
		}
		insertQuery := fmt.Sprintf(`INSERT INTO %s (id, version, document) VALUES (?, 1, ?)`, r.table)
		if _, err := tx.ExecContext(ctx, insertQuery, id, string(raw)); err != nil {
			return 0, fmt.Errorf("repository: insert %s: %w", id, err)
		}
		if err := tx.Commit(); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if !exists {
		return 0, ErrNotFound
	}
	if currentVersion != expectedVersion {
		return 0, ErrVersionConflict
	}

	newVersion := currentVersion + 1
	updateQuery := fmt.Sprintf(`
		UPDATE %s SET version = ?, document = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?
	`, r.table)
	res, err := tx.ExecContext(ctx, updateQuery, newVersion, string(raw), id, expectedVersion)
	if err != nil {
		return 0, fmt.Errorf("repository: update %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrVersionConflict
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newVersion, nil
}

func (r *SQLiteRepository[T]) Delete(ctx context.Context, id string, expectedVersion int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND version = ?`, r.table)
	res, err := r.db.ExecContext(ctx, query, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("repository: delete %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Disambiguate "didn't exist" from "version mismatch".
	var version int64
	checkQuery := fmt.Sprintf(`SELECT version FROM %s WHERE id = ?`, r.table)
	err = r.db.QueryRowContext(ctx, checkQuery, id).Scan(&version)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return ErrVersionConflict
}
