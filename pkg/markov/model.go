package markov

// Distribution is a discrete probability distribution over the destination
// tokens observed after a single source token. Destinations are kept in
// first-observed order so that, given a fixed random stream, generation is
// reproducible.
type Distribution struct {
	dests  []Token
	counts []int
	probs  []float64
	index  map[Token]int
	total  int
}

func newDistribution() *Distribution {
	return &Distribution{index: make(map[Token]int)}
}

// observe records one transition into dest during counting.
func (d *Distribution) observe(dest Token) {
	i, ok := d.index[dest]
	if !ok {
		i = len(d.dests)
		d.index[dest] = i
		d.dests = append(d.dests, dest)
		d.counts = append(d.counts, 0)
	}
	d.counts[i]++
	d.total++
}

// normalize converts the accumulated counts into probabilities. Called once,
// at the end of model construction.
func (d *Distribution) normalize() {
	d.probs = make([]float64, len(d.counts))
	for i, c := range d.counts {
		d.probs[i] = float64(c) / float64(d.total)
	}
}

// Len returns the number of distinct destination tokens.
func (d *Distribution) Len() int {
	return len(d.dests)
}

// Tokens returns the destination tokens in first-observed order.
func (d *Distribution) Tokens() []Token {
	out := make([]Token, len(d.dests))
	copy(out, d.dests)
	return out
}

// Prob returns the probability of transitioning to dest, or 0 if dest was
// never observed after this distribution's source.
func (d *Distribution) Prob(dest Token) float64 {
	i, ok := d.index[dest]
	if !ok {
		return 0
	}
	return d.probs[i]
}

// Count returns the raw transition count into dest.
func (d *Distribution) Count(dest Token) int {
	i, ok := d.index[dest]
	if !ok {
		return 0
	}
	return d.counts[i]
}

// TransitionModel maps each source token observed in training to the
// distribution over its successors. It is built once per corpus and never
// mutated afterwards, so concurrent reads need no locking. The start marker
// appears only as a source, the end marker only as a destination, and tokens
// never observed in training have no entry at all.
type TransitionModel struct {
	transitions map[Token]*Distribution
	order       []Token // sources in first-observed order
}

// BuildModel counts every adjacent token pair in the given sentences and
// normalizes the counts into per-source probability distributions. An empty
// input produces an empty model; sampling against one fails fast with
// ErrEmptyModel rather than looping.
func BuildModel(sentences []Sentence) *TransitionModel {
	m := &TransitionModel{transitions: make(map[Token]*Distribution)}

	for _, sentence := range sentences {
		for i := 0; i+1 < len(sentence); i++ {
			src, dest := sentence[i], sentence[i+1]
			dist, ok := m.transitions[src]
			if !ok {
				dist = newDistribution()
				m.transitions[src] = dist
				m.order = append(m.order, src)
			}
			dist.observe(dest)
		}
	}

	for _, dist := range m.transitions {
		dist.normalize()
	}

	return m
}

// Len returns the number of source tokens in the model.
func (m *TransitionModel) Len() int {
	return len(m.transitions)
}

// Distribution returns the successor distribution for src. The second return
// value is false if src was never observed as a transition source.
func (m *TransitionModel) Distribution(src Token) (*Distribution, bool) {
	dist, ok := m.transitions[src]
	return dist, ok
}

// Sources returns every source token in first-observed order.
func (m *TransitionModel) Sources() []Token {
	out := make([]Token, len(m.order))
	copy(out, m.order)
	return out
}
