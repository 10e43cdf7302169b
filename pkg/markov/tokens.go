package markov

// Token is an atomic unit of a sentence: a word (with any punctuation left
// attached exactly as it appeared in the source text) or one of the two
// synthetic boundary markers. Tokens compare by exact, case-sensitive string
// equality.
type Token string

const (
	// StartToken is the synthetic marker prepended to every training
	// sentence. It only ever appears as a transition source.
	StartToken Token = "$tart"
	// EndToken is the synthetic marker appended to every training sentence.
	// Reaching it terminates generation; it has no outgoing transitions.
	EndToken Token = "$top"
)

// Sentence is an ordered sequence of Tokens. Sentences produced by a
// Tokenizer always begin with StartToken and end with EndToken.
type Sentence []Token

// Tokenizer splits raw corpus text into marker-bracketed sentences. It exists
// as an interface so the model builder stays independent of the splitting
// strategy.
type Tokenizer interface {
	Tokenize(rawText string) []Sentence
}
