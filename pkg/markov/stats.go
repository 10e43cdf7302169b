package markov

// ModelStats holds aggregate statistics for a trained model.
type ModelStats struct {
	Vocabulary     int // distinct tokens appearing as source or destination, markers included
	Transitions    int // unique source->destination links
	TotalFrequency int // sum of all transition counts; the number of trained pairs
	StartingTokens int // distinct tokens that can begin a sentence
}

// Stats returns a snapshot of aggregate statistics for the model.
func (m *TransitionModel) Stats() ModelStats {
	vocab := make(map[Token]struct{})
	var stats ModelStats

	for src, dist := range m.transitions {
		vocab[src] = struct{}{}
		for _, dest := range dist.dests {
			vocab[dest] = struct{}{}
		}
		stats.Transitions += dist.Len()
		stats.TotalFrequency += dist.total
	}

	if starters, ok := m.transitions[StartToken]; ok {
		stats.StartingTokens = starters.Len()
	}
	stats.Vocabulary = len(vocab)
	return stats
}
