package markov

import (
	"bufio"
	"strings"
)

// LineTokenizer is the default Tokenizer implementation. It treats each
// non-blank input line as one complete sentence, splits it on whitespace, and
// brackets the result with the start and end markers. Punctuation is never
// stripped; a token is exactly the substring that appeared in the line.
type LineTokenizer struct{}

// NewLineTokenizer returns a tokenizer for newline-delimited corpora.
func NewLineTokenizer() *LineTokenizer {
	return &LineTokenizer{}
}

// Tokenize splits rawText into sentences, one per non-blank line, preserving
// input order. Blank and whitespace-only lines produce no sentence. An empty
// input yields an empty slice; there are no failure modes.
func (t *LineTokenizer) Tokenize(rawText string) []Sentence {
	var sentences []Sentence

	scanner := bufio.NewScanner(strings.NewReader(rawText))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		sentence := make(Sentence, 0, len(words)+2)
		sentence = append(sentence, StartToken)
		for _, word := range words {
			sentence = append(sentence, Token(word))
		}
		sentence = append(sentence, EndToken)

		sentences = append(sentences, sentence)
	}

	return sentences
}
