package corpus

import "context"

// StoreStats holds aggregated statistics for the entire store.
type StoreStats struct {
	Speakers   int            // number of speakers in the store
	TotalLines int            // corpus lines across all speakers
	LineCounts map[string]int // speaker name -> line count
}

// Stats returns a snapshot of statistics for the entire store.
func (s *Store) Stats(ctx context.Context) (*StoreStats, error) {
	speakers, err := s.ListSpeakers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StoreStats{
		Speakers:   len(speakers),
		LineCounts: make(map[string]int),
	}
	for _, sp := range speakers {
		var count int
		if err = s.stmtCountLines.QueryRowContext(ctx, sp.Id).Scan(&count); err != nil {
			return nil, err
		}
		stats.LineCounts[sp.Name] = count
		stats.TotalLines += count
	}

	return stats, nil
}
