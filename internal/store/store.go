// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kalilinux212222/pass-gene/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Key namespaces.
const (
	NamespaceState  = "state"
	NamespaceImport = "import"
)

// Keys in the state namespace.
const (
	KeyCurrentPassword   = "currentPassword"
	KeyCurrentObfuscated = "currentObfuscated"
	KeyLastGenerated     = "lastGenerated"
	KeyHistory           = "history"
)

const upsertStmt = `INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
	ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value`

// Store wraps SQLite access for generator state and imported passwords.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := New(db)
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// New wraps an already opened database. The schema must exist.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (namespace, key)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadState reads the persisted current pair and history.
func (s *Store) LoadState(ctx context.Context) (model.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv WHERE namespace = ?`, NamespaceState)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var snap model.Snapshot
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.Snapshot{}, err
		}
		switch key {
		case KeyCurrentPassword:
			snap.CurrentPassword = value
			snap.HasCurrent = true
		case KeyCurrentObfuscated:
			snap.CurrentObfuscated = value
		case KeyLastGenerated:
			snap.LastGenerated = value
		case KeyHistory:
			if err := json.Unmarshal([]byte(value), &snap.History); err != nil {
				return model.Snapshot{}, fmt.Errorf("decode history: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}

// SaveState writes the current pair and history in a single transaction.
func (s *Store) SaveState(ctx context.Context, snap model.Snapshot) (err error) {
	history := snap.History
	if history == nil {
		history = []string{}
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	values := [][2]string{
		{KeyCurrentPassword, snap.CurrentPassword},
		{KeyCurrentObfuscated, snap.CurrentObfuscated},
		{KeyLastGenerated, snap.LastGenerated},
		{KeyHistory, string(encoded)},
	}
	for _, kv := range values {
		if _, err = tx.ExecContext(ctx, upsertStmt, NamespaceState, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ResetState deletes all state and imported entries in a single transaction.
func (s *Store) ResetState(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM kv WHERE namespace IN (?, ?)`, NamespaceState, NamespaceImport); err != nil {
		return err
	}
	return tx.Commit()
}

// PutImported stores plaintext -> obfuscated pairs, overwriting existing keys.
// The whole batch is applied or none of it is.
func (s *Store) PutImported(ctx context.Context, pairs []model.Pair) (err error) {
	if len(pairs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for _, p := range pairs {
		if _, err = tx.ExecContext(ctx, upsertStmt, NamespaceImport, p.Plaintext, p.Obfuscated); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListImported returns imported pairs ordered by plaintext.
func (s *Store) ListImported(ctx context.Context) ([]model.Pair, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv WHERE namespace = ? ORDER BY key ASC`, NamespaceImport)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Pair
	for rows.Next() {
		var p model.Pair
		if err := rows.Scan(&p.Plaintext, &p.Obfuscated); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
