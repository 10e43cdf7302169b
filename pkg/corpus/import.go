package corpus

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Import reads newline-delimited corpus text from r and appends it to the
// speaker's corpus, one sentence per line. Blank and whitespace-only lines
// are skipped; everything else is stored verbatim. The whole import runs in a
// single transaction, so a failed read leaves the corpus untouched.
func (s *Store) Import(ctx context.Context, speaker Speaker, r io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var position int
	if err = tx.StmtContext(ctx, s.stmtMaxPosition).QueryRowContext(ctx, speaker.Id).Scan(&position); err != nil {
		return 0, fmt.Errorf("could not determine corpus position for speaker %d: %w", speaker.Id, err)
	}

	stmtInsertLine, err := tx.PrepareContext(ctx, `INSERT INTO corpus_lines (speaker_id, position, line_text) VALUES (?, ?, ?);`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare line insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmtInsertLine)

	imported := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		position++
		if _, err = stmtInsertLine.ExecContext(ctx, speaker.Id, position, line); err != nil {
			return 0, fmt.Errorf("failed to insert corpus line %d: %w", position, err)
		}
		imported++
	}
	if err = scanner.Err(); err != nil {
		return 0, fmt.Errorf("error reading corpus: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Corpus imported",
		slog.String("speaker_name", speaker.Name),
		slog.Int("speaker_id", speaker.Id),
		slog.Int("lines_imported", imported),
	)

	return imported, nil
}

// Lines returns the speaker's corpus lines in insertion order.
func (s *Store) Lines(ctx context.Context, speaker Speaker) ([]string, error) {
	rows, err := s.stmtSpeakerLines.QueryContext(ctx, speaker.Id)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var lines []string
	for rows.Next() {
		var line string
		if err = rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Text reassembles the speaker's corpus as newline-delimited text, ready to
// hand to the markov trainer.
func (s *Store) Text(ctx context.Context, speaker Speaker) (string, error) {
	lines, err := s.Lines(ctx, speaker)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
