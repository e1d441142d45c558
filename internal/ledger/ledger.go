// Package ledger provides SQLite-backed tracking of exported flashcards
// so repeat exports of the same block skip already-created cards.
package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/laguz/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exports (
	block_id   TEXT NOT NULL,
	term_index INTEGER NOT NULL,
	term       TEXT NOT NULL,
	deck       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(block_id, term_index, term)
);

CREATE INDEX IF NOT EXISTS idx_exports_block ON exports(block_id);
`

// DB wraps a sql.DB with export-ledger operations.
type DB struct {
	conn *sql.DB
}

// Store defines the ledger operations the exporter depends on. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type Store interface {
	Has(blockID string, termIndex int, term string) (bool, error)
	Record(blockID string, termIndex int, term, deck string) error
	List(blockID string) ([]models.ExportRecord, error)
	ListAll() ([]models.ExportRecord, error)
	Reset(blockID string) (int64, error)
	ResetAll() (int64, error)
	Close() error
}

var _ Store = (*DB)(nil)

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ledger: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Has reports whether the (block, term slot, term) triple was already
// exported. The term comparison is case-insensitive; export time plays
// no part in the identity.
func (db *DB) Has(blockID string, termIndex int, term string) (bool, error) {
	var n int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM exports WHERE block_id = ? AND term_index = ? AND term = ?`,
		blockID, termIndex, strings.ToLower(term),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("ledger: has: %w", err)
	}
	return n > 0, nil
}

// Record marks a card as exported. Recording the same triple twice is a
// no-op rather than an error.
func (db *DB) Record(blockID string, termIndex int, term, deck string) error {
	_, err := db.conn.Exec(
		`INSERT OR IGNORE INTO exports (block_id, term_index, term, deck) VALUES (?, ?, ?, ?)`,
		blockID, termIndex, strings.ToLower(term), deck,
	)
	if err != nil {
		return fmt.Errorf("ledger: record: %w", err)
	}
	return nil
}

// List returns the export records for one block, newest first.
func (db *DB) List(blockID string) ([]models.ExportRecord, error) {
	rows, err := db.conn.Query(
		`SELECT block_id, term_index, term, deck, created_at FROM exports
		 WHERE block_id = ? ORDER BY created_at DESC, term_index ASC`,
		blockID,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListAll returns every export record, newest first.
func (db *DB) ListAll() ([]models.ExportRecord, error) {
	rows, err := db.conn.Query(
		`SELECT block_id, term_index, term, deck, created_at FROM exports
		 ORDER BY created_at DESC, block_id ASC, term_index ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: list all: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Reset forgets the export history of one block and returns the number
// of records removed.
func (db *DB) Reset(blockID string) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM exports WHERE block_id = ?`, blockID)
	if err != nil {
		return 0, fmt.Errorf("ledger: reset: %w", err)
	}
	return res.RowsAffected()
}

// ResetAll clears the whole ledger and returns the number of records
// removed.
func (db *DB) ResetAll() (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM exports`)
	if err != nil {
		return 0, fmt.Errorf("ledger: reset all: %w", err)
	}
	return res.RowsAffected()
}

func scanRecords(rows *sql.Rows) ([]models.ExportRecord, error) {
	var out []models.ExportRecord
	for rows.Next() {
		var rec models.ExportRecord
		var created time.Time
		if err := rows.Scan(&rec.BlockID, &rec.TermIndex, &rec.Term, &rec.Deck, &created); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		rec.CreatedAt = created
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: rows: %w", err)
	}
	return out, nil
}
