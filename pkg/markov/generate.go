package markov

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
)

// DefaultMaxSteps is the default bound on random-walk length. Termination of
// a walk is probabilistic, not structurally guaranteed, so every walk is
// capped; exceeding the cap surfaces as ErrGenerationOverflow.
const DefaultMaxSteps = 500

// babbleOptions holds the configurable generation parameters of a Babbler.
type babbleOptions struct {
	maxSteps    int
	temperature float64
	topK        int
	rng         *rand.Rand
}

// BabbleOption configures a Babbler at construction time.
type BabbleOption func(*babbleOptions)

// WithMaxSteps sets the maximum number of transitions a single walk may take
// before ErrGenerationOverflow is returned.
func WithMaxSteps(n int) BabbleOption {
	return func(o *babbleOptions) { o.maxSteps = n }
}

// WithSeed seeds the Babbler's random source deterministically, making
// repeated runs reproducible.
func WithSeed(seed uint64) BabbleOption {
	return func(o *babbleOptions) { o.rng = rand.New(rand.NewPCG(seed, 0)) }
}

// WithRand supplies an explicit random source. The Babbler serializes access
// to it, so the source must not be shared with other users.
func WithRand(rng *rand.Rand) BabbleOption {
	return func(o *babbleOptions) { o.rng = rng }
}

// WithTemperature adjusts the randomness of token selection.
// A value of 1.0 is a plain categorical draw proportional to the transition
// probabilities. Values > 1.0 flatten the distribution, values in (0, 1)
// sharpen it, and values <= 0 always pick the most frequent successor.
func WithTemperature(t float64) BabbleOption {
	return func(o *babbleOptions) { o.temperature = t }
}

// WithTopK restricts each draw to the k most frequent successors. Zero
// disables the restriction.
func WithTopK(k int) BabbleOption {
	return func(o *babbleOptions) { o.topK = k }
}

// Babbler samples sentences from an immutable TransitionModel. The model may
// be shared; the random source is owned by the Babbler and guarded by a
// mutex, so a single Babbler is safe for concurrent use.
type Babbler struct {
	model  *TransitionModel
	opts   babbleOptions
	logger *slog.Logger

	mu sync.Mutex // guards opts.rng
}

// NewBabbler creates a sampler for the given model. Without options it uses
// DefaultMaxSteps, temperature 1.0, no top-k restriction, and a time-seeded
// random source.
func NewBabbler(model *TransitionModel, opts ...BabbleOption) *Babbler {
	options := babbleOptions{
		maxSteps:    DefaultMaxSteps,
		temperature: 1.0,
		topK:        0,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.rng == nil {
		options.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Babbler{
		model:  model,
		opts:   options,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Babbler. By default, all logs are discarded.
func (b *Babbler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Sample performs one random walk from the start marker, drawing a successor
// per step until the end marker is drawn, and returns the visited tokens with
// both markers excluded. It returns ErrEmptyModel if the model has no
// distribution for the start marker, ErrDeadEndToken if the walk reaches a
// non-terminal token with no successors, and ErrGenerationOverflow if the
// step bound is exceeded.
func (b *Babbler) Sample() ([]Token, error) {
	path, err := b.walkUntil(StartToken, EndToken)
	if err != nil {
		return nil, err
	}
	return path[1 : len(path)-1], nil
}

// Babble generates one sentence: the tokens of a Sample joined with single
// spaces. No capitalization or punctuation post-processing is performed.
func (b *Babbler) Babble() (string, error) {
	tokens, err := b.Sample()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(string(tok))
	}
	return sb.String(), nil
}

// BabbleMany generates n independent sentences. It stops at the first error;
// the sentences generated up to that point are returned alongside it.
func (b *Babbler) BabbleMany(n int) ([]string, error) {
	sentences := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := b.Babble()
		if err != nil {
			return sentences, fmt.Errorf("babble %d of %d: %w", i+1, n, err)
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}

// Walk transitions from start n-1 times and returns the n visited tokens,
// including start. The end marker is absorbing: once reached, the remaining
// steps repeat it rather than consulting the model.
func (b *Babbler) Walk(start Token, n int) ([]Token, error) {
	if n <= 0 {
		return nil, nil
	}

	visited := make([]Token, 0, n)
	visited = append(visited, start)

	current := start
	for len(visited) < n {
		if current == EndToken {
			visited = append(visited, EndToken)
			continue
		}
		next, err := b.transition(current)
		if err != nil {
			return nil, err
		}
		visited = append(visited, next)
		current = next
	}
	return visited, nil
}

// Path transitions from start until stop is drawn and returns every visited
// token, including both endpoints. Reaching the end marker before stop is a
// dead end, since the end marker has no outgoing transitions.
func (b *Babbler) Path(start, stop Token) ([]Token, error) {
	return b.walkUntil(start, stop)
}

func (b *Babbler) walkUntil(start, stop Token) ([]Token, error) {
	if b.model.Len() == 0 {
		return nil, fmt.Errorf("model has no transitions: %w", ErrEmptyModel)
	}

	visited := []Token{start}
	current := start

	for steps := 0; steps < b.opts.maxSteps; steps++ {
		if current == stop {
			return visited, nil
		}
		next, err := b.transition(current)
		if err != nil {
			return nil, err
		}
		visited = append(visited, next)
		current = next
	}
	if current == stop {
		return visited, nil
	}

	b.logger.Debug("walk exceeded step bound",
		slog.String("start", string(start)),
		slog.String("stop", string(stop)),
		slog.Int("max_steps", b.opts.maxSteps),
	)
	return nil, fmt.Errorf("no %q after %d steps: %w", stop, b.opts.maxSteps, ErrGenerationOverflow)
}

// transition draws the successor of current with a single categorical draw.
func (b *Babbler) transition(current Token) (Token, error) {
	dist, ok := b.model.Distribution(current)
	if !ok {
		if current == StartToken {
			return "", fmt.Errorf("no successors for start marker: %w", ErrEmptyModel)
		}
		b.logger.Debug("walk hit dead end", slog.String("token", string(current)))
		return "", fmt.Errorf("token %q has no successors: %w", current, ErrDeadEndToken)
	}

	b.mu.Lock()
	next := chooseNext(dist, b.opts.rng, &b.opts)
	b.mu.Unlock()
	return next, nil
}

// chooseNext selects a destination from dist according to the configured
// sampling parameters. With the defaults (temperature 1, no top-k) it is a
// plain weighted draw proportional to the transition counts.
func chooseNext(dist *Distribution, rng *rand.Rand, o *babbleOptions) Token {
	dests, counts, total := dist.dests, dist.counts, dist.total

	// topK filtering
	if o.topK > 0 && o.topK < len(dests) {
		idx := make([]int, len(dests))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return counts[idx[a]] > counts[idx[b]]
		})
		idx = idx[:o.topK]

		topDests := make([]Token, len(idx))
		topCounts := make([]int, len(idx))
		total = 0
		for i, j := range idx {
			topDests[i] = dests[j]
			topCounts[i] = counts[j]
			total += counts[j]
		}
		dests, counts = topDests, topCounts
	}

	if o.temperature <= 0 { // Deterministic: most frequent successor wins
		best := 0
		for i, c := range counts {
			if c > counts[best] {
				best = i
			}
		}
		return dests[best]
	}

	if o.temperature == 1.0 { // Standard weighted random
		randChoice := rng.IntN(total)
		for i, c := range counts {
			randChoice -= c
			if randChoice < 0 {
				return dests[i]
			}
		}
		return dests[len(dests)-1]
	}

	// Temperature-based sampling over log-counts
	logWeights := make([]float64, len(counts))
	maxLW := math.Inf(-1)
	for i, c := range counts {
		lw := math.Log(float64(c)) / o.temperature
		logWeights[i] = lw
		if lw > maxLW {
			maxLW = lw
		}
	}
	var totalWeight float64
	weights := make([]float64, len(counts))
	for i, lw := range logWeights {
		w := math.Exp(lw - maxLW)
		weights[i] = w
		totalWeight += w
	}
	randChoice := rng.Float64() * totalWeight
	for i := range dests {
		randChoice -= weights[i]
		if randChoice < 0 {
			return dests[i]
		}
	}
	return dests[len(dests)-1]
}
