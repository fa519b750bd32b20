package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const stateSchema = `CREATE TABLE IF NOT EXISTS uploaded_archives (
	path        TEXT PRIMARY KEY,
	size        INTEGER NOT NULL,
	hash        TEXT NOT NULL,
	uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// StateDB remembers which archives were already sent. The server dedups by
// session anyway, so this is purely a fast path: repeated runs over a big
// export directory skip straight past everything already uploaded.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens the state database under dir, creating the directory and
// schema on first run.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if _, err := db.Exec(stateSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsUploaded reports whether this exact file content was sent before. Size
// and hash are part of the key, so an archive edited in place goes out again.
func (s *StateDB) IsUploaded(relPath string, size int64, hash string) (bool, error) {
	var p string
	err := s.db.QueryRow(
		`SELECT path FROM uploaded_archives WHERE path = ? AND size = ? AND hash = ?`,
		relPath, size, hash,
	).Scan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkUploaded records a successful send, replacing any stale row for the
// same path.
func (s *StateDB) MarkUploaded(relPath string, size int64, hash string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO uploaded_archives (path, size, hash) VALUES (?, ?, ?)`,
		relPath, size, hash,
	)
	return err
}

func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashFile returns the hex SHA-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
