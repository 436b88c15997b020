package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"folio/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.BlobStore on a SQLite database
type Store struct {
	db           *sql.DB
	notebookPath string
	dbPath       string
}

// Ensure Store implements BlobStore
var _ ports.BlobStore = (*Store)(nil)

// Open opens the store of the given notebook under the XDG data directory
func Open(notebookPath string) (*Store, error) {
	notebookPath, err := expandHome(notebookPath)
	if err != nil {
		return nil, err
	}
	return OpenPath(databasePath(notebookPath), notebookPath)
}

// OpenPath opens the store at an explicit database path
func OpenPath(dbPath, notebookPath string) (*Store, error) {
	s := &Store{notebookPath: notebookPath, dbPath: dbPath}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if s.NeedsReset() {
		if _, err := db.Exec(`DELETE FROM blobs`); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reset database: %w", err)
		}
	}

	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NeedsReset returns true if the stored blobs belong to another schema
// version or notebook
func (s *Store) NeedsReset() bool {
	version := s.meta("schema_version")
	notebookHash := s.meta("notebook_path_hash")

	if version == "" && notebookHash == "" {
		return false // fresh database
	}
	return version != schemaVersion || notebookHash != hashNotebookPath(s.notebookPath)
}

// Get returns the value stored under key
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value
func (s *Store) Put(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// databasePath returns the path for the SQLite database
func databasePath(notebookPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// one database per notebook
	return filepath.Join(dataHome, "folio", hashNotebookPath(notebookPath)+".db")
}

// hashNotebookPath returns a short hash of the notebook path
func hashNotebookPath(notebookPath string) string {
	h := sha256.Sum256([]byte(notebookPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta records the schema version and notebook hash. Each upsert
// gets its own statement so every value binds to its own placeholder.
func (s *Store) updateMeta() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	meta := [][2]string{
		{"schema_version", schemaVersion},
		{"notebook_path_hash", hashNotebookPath(s.notebookPath)},
	}
	for _, kv := range meta {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// meta returns a stored metadata value, or "" when absent
func (s *Store) meta(key string) string {
	var value string
	s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	return value
}

func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
