package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrSpeakerNotFound is returned when a named speaker has no entry in the store.
var ErrSpeakerNotFound = errors.New("corpus: speaker not found")

// SetupSchema initializes the corpus tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaSpeakers = `
CREATE TABLE IF NOT EXISTS corpus_speakers (
    speaker_id INTEGER PRIMARY KEY,
    speaker_name TEXT NOT NULL UNIQUE
);
`
		schemaLines = `
CREATE TABLE IF NOT EXISTS corpus_lines (
    line_id INTEGER PRIMARY KEY,
    speaker_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    line_text TEXT NOT NULL,
    UNIQUE (speaker_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaSpeakers); err != nil {
		return fmt.Errorf("could not create speakers schema: %w", err)
	}

	if _, err = tx.Exec(schemaLines); err != nil {
		return fmt.Errorf("could not create lines schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store provides access to the speaker corpora in a database. It holds the
// connection and prepared SQL statements for the common operations.
type Store struct {
	db                *sql.DB
	stmtGetSpeaker    *sql.Stmt
	stmtListSpeakers  *sql.Stmt
	stmtAddSpeaker    *sql.Stmt
	stmtMaxPosition   *sql.Stmt
	stmtSpeakerLines  *sql.Stmt
	stmtCountLines    *sql.Stmt
	logger            *slog.Logger
}

// NewStore creates a Store on top of an initialized database, pre-compiling
// all necessary SQL statements. It returns an error if any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtGetSpeaker, err := db.Prepare(`SELECT speaker_id FROM corpus_speakers WHERE speaker_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListSpeakers, err := db.Prepare(`SELECT speaker_id, speaker_name FROM corpus_speakers ORDER BY speaker_name;`)
	if err != nil {
		return nil, err
	}

	stmtAddSpeaker, err := db.Prepare(`INSERT INTO corpus_speakers (speaker_name) VALUES (?) RETURNING speaker_id;`)
	if err != nil {
		return nil, err
	}

	stmtMaxPosition, err := db.Prepare(`SELECT coalesce(MAX(position), 0) FROM corpus_lines WHERE speaker_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtSpeakerLines, err := db.Prepare(`SELECT line_text FROM corpus_lines WHERE speaker_id = ? ORDER BY position;`)
	if err != nil {
		return nil, err
	}

	stmtCountLines, err := db.Prepare(`SELECT COUNT(*) FROM corpus_lines WHERE speaker_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                db,
		stmtGetSpeaker:    stmtGetSpeaker,
		stmtListSpeakers:  stmtListSpeakers,
		stmtAddSpeaker:    stmtAddSpeaker,
		stmtMaxPosition:   stmtMaxPosition,
		stmtSpeakerLines:  stmtSpeakerLines,
		stmtCountLines:    stmtCountLines,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store. It does not
// close the underlying database connection.
func (s *Store) Close() {
	_ = s.stmtGetSpeaker.Close()
	_ = s.stmtListSpeakers.Close()
	_ = s.stmtAddSpeaker.Close()
	_ = s.stmtMaxPosition.Close()
	_ = s.stmtSpeakerLines.Close()
	_ = s.stmtCountLines.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
