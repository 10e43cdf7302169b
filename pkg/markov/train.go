package markov

import "fmt"

// Train tokenizes rawText with the default line tokenizer and builds a
// transition model from it. The input must contain one training sentence per
// line; blank lines are skipped. It returns ErrEmptyCorpus if no sentences
// survive tokenization.
func Train(rawText string) (*TransitionModel, error) {
	return TrainWith(NewLineTokenizer(), rawText)
}

// TrainWith is like Train but uses the provided Tokenizer.
func TrainWith(tokenizer Tokenizer, rawText string) (*TransitionModel, error) {
	sentences := tokenizer.Tokenize(rawText)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("no sentences in training text: %w", ErrEmptyCorpus)
	}
	return BuildModel(sentences), nil
}
