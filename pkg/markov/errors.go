package markov

import "errors"

// The package's error kinds. All are local, recoverable conditions returned
// synchronously to the caller; none are retried internally. A caller may
// retry Babble on ErrGenerationOverflow, since every attempt draws fresh
// randomness.
var (
	// ErrEmptyCorpus is returned by training when the corpus contains zero
	// sentences (empty or whitespace-only input).
	ErrEmptyCorpus = errors.New("markov: empty corpus")

	// ErrEmptyModel is returned when sampling is attempted against a model
	// with no distribution for the current token, notably a model whose
	// start marker has no observed successors.
	ErrEmptyModel = errors.New("markov: empty model")

	// ErrDeadEndToken is returned when a non-terminal token reached during
	// generation has no outgoing transitions. This indicates malformed or
	// truncated training data and is not silently recovered.
	ErrDeadEndToken = errors.New("markov: dead-end token")

	// ErrGenerationOverflow is returned when a random walk exceeds the
	// configured step bound without reaching the end marker.
	ErrGenerationOverflow = errors.New("markov: generation overflow")
)
