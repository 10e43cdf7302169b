package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Speaker identifies one corpus in the store.
type Speaker struct {
	Id   int
	Name string
}

// AddSpeaker creates a new, empty corpus for the named speaker and returns it.
func (s *Store) AddSpeaker(ctx context.Context, name string) (Speaker, error) {
	var id int
	if err := s.stmtAddSpeaker.QueryRowContext(ctx, name).Scan(&id); err != nil {
		return Speaker{}, fmt.Errorf("could not add speaker %q: %w", name, err)
	}
	return Speaker{Id: id, Name: name}, nil
}

// GetSpeaker looks up a speaker by name. It returns ErrSpeakerNotFound if the
// store has no corpus for that name.
func (s *Store) GetSpeaker(ctx context.Context, name string) (Speaker, error) {
	var id int
	err := s.stmtGetSpeaker.QueryRowContext(ctx, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return Speaker{}, fmt.Errorf("speaker %q: %w", name, ErrSpeakerNotFound)
	}
	if err != nil {
		return Speaker{}, err
	}
	return Speaker{Id: id, Name: name}, nil
}

// ListSpeakers returns every speaker in the store, ordered by name.
func (s *Store) ListSpeakers(ctx context.Context) ([]Speaker, error) {
	rows, err := s.stmtListSpeakers.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var speakers []Speaker
	for rows.Next() {
		var sp Speaker
		if err = rows.Scan(&sp.Id, &sp.Name); err != nil {
			return nil, err
		}
		speakers = append(speakers, sp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return speakers, nil
}

// RemoveSpeaker deletes a speaker and all of its corpus lines. The operation
// is performed within a transaction.
func (s *Store) RemoveSpeaker(ctx context.Context, speaker Speaker) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM corpus_lines WHERE speaker_id = ?", speaker.Id); err != nil {
		return fmt.Errorf("failed to remove lines for speaker %d: %w", speaker.Id, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM corpus_speakers WHERE speaker_id = ?", speaker.Id); err != nil {
		return fmt.Errorf("failed to remove speaker %d: %w", speaker.Id, err)
	}

	s.logger.InfoContext(ctx, "Speaker removed",
		slog.String("speaker_name", speaker.Name),
		slog.Int("speaker_id", speaker.Id),
	)

	return tx.Commit()
}
