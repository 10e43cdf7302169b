package markov

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const probTolerance = 1e-9

func trainTest(t *testing.T, rawText string) *TransitionModel {
	t.Helper()
	model, err := Train(rawText)
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	return model
}

func TestBuildModelProbabilitiesSumToOne(t *testing.T) {
	model := trainTest(t, "one fish two fish.\nred fish blue fish.\nso many fish!")

	for _, src := range model.Sources() {
		dist, ok := model.Distribution(src)
		if !ok {
			t.Fatalf("Sources() returned %q but Distribution() does not know it", src)
		}
		var sum float64
		for _, dest := range dist.Tokens() {
			p := dist.Prob(dest)
			if p < 0 {
				t.Errorf("negative probability %v for %q -> %q", p, src, dest)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > probTolerance {
			t.Errorf("probabilities for source %q sum to %v, want 1.0", src, sum)
		}
	}
}

func TestBuildModelSharedPrefix(t *testing.T) {
	model := trainTest(t, "I am wise.\nI am strong.")

	dist, ok := model.Distribution("am")
	if !ok {
		t.Fatal(`no distribution for source "am"`)
	}
	if got := dist.Prob("wise."); math.Abs(got-0.5) > probTolerance {
		t.Errorf(`P("wise."|"am") = %v, want 0.5`, got)
	}
	if got := dist.Prob("strong."); math.Abs(got-0.5) > probTolerance {
		t.Errorf(`P("strong."|"am") = %v, want 0.5`, got)
	}

	// Destinations enumerate in first-observed order.
	if got := dist.Tokens(); !reflect.DeepEqual(got, []Token{"wise.", "strong."}) {
		t.Errorf("destination order = %v, want [wise. strong.]", got)
	}

	// The shared prefix is counted twice.
	start, _ := model.Distribution(StartToken)
	if got := start.Count("I"); got != 2 {
		t.Errorf(`count($tart -> "I") = %d, want 2`, got)
	}
	if got := start.Prob("I"); math.Abs(got-1.0) > probTolerance {
		t.Errorf(`P("I"|start) = %v, want 1.0`, got)
	}
}

func TestBuildModelSingleWordSentence(t *testing.T) {
	model := trainTest(t, "Patience.")

	start, ok := model.Distribution(StartToken)
	if !ok {
		t.Fatal("no distribution for the start marker")
	}
	if got := start.Prob("Patience."); math.Abs(got-1.0) > probTolerance {
		t.Errorf(`P("Patience."|start) = %v, want 1.0`, got)
	}

	word, ok := model.Distribution("Patience.")
	if !ok {
		t.Fatal(`no distribution for "Patience."`)
	}
	if got := word.Prob(EndToken); math.Abs(got-1.0) > probTolerance {
		t.Errorf(`P(end|"Patience.") = %v, want 1.0`, got)
	}
}

func TestBuildModelInvariants(t *testing.T) {
	model := trainTest(t, "a b c\nb a\nc c a")

	// The start marker is never a destination.
	for _, src := range model.Sources() {
		dist, _ := model.Distribution(src)
		if dist.Prob(StartToken) != 0 {
			t.Errorf("start marker appears as a destination of %q", src)
		}
	}

	// The end marker has no outgoing transitions.
	if _, ok := model.Distribution(EndToken); ok {
		t.Error("end marker has a successor distribution")
	}

	// Unobserved tokens have no entry.
	if _, ok := model.Distribution("zebra"); ok {
		t.Error(`model has an implicit entry for the unseen token "zebra"`)
	}
}

func TestBuildModelIdempotent(t *testing.T) {
	const corpus = "one fish two fish.\nred fish blue fish."
	sentences := NewLineTokenizer().Tokenize(corpus)

	first := BuildModel(sentences)
	second := BuildModel(sentences)

	if !reflect.DeepEqual(first.Sources(), second.Sources()) {
		t.Fatalf("source sets differ: %v vs %v", first.Sources(), second.Sources())
	}
	for _, src := range first.Sources() {
		d1, _ := first.Distribution(src)
		d2, _ := second.Distribution(src)
		if !reflect.DeepEqual(d1.Tokens(), d2.Tokens()) {
			t.Errorf("destination order for %q differs: %v vs %v", src, d1.Tokens(), d2.Tokens())
		}
		for _, dest := range d1.Tokens() {
			if d1.Prob(dest) != d2.Prob(dest) {
				t.Errorf("P(%q|%q) differs between builds: %v vs %v", dest, src, d1.Prob(dest), d2.Prob(dest))
			}
		}
	}
}

func TestTrainEmptyCorpus(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n  "} {
		if _, err := Train(input); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("Train(%q) error = %v, want ErrEmptyCorpus", input, err)
		}
	}

	// An explicitly built empty model is valid; only sampling fails.
	model := BuildModel(nil)
	if model.Len() != 0 {
		t.Errorf("BuildModel(nil).Len() = %d, want 0", model.Len())
	}
}

func TestModelStats(t *testing.T) {
	model := trainTest(t, "a b\na c")

	stats := model.Stats()
	// Vocabulary: $tart, a, b, c, $top.
	if stats.Vocabulary != 5 {
		t.Errorf("Vocabulary = %d, want 5", stats.Vocabulary)
	}
	// Links: start->a, a->b, a->c, b->end, c->end.
	if stats.Transitions != 5 {
		t.Errorf("Transitions = %d, want 5", stats.Transitions)
	}
	// Pairs observed: 2 sentences x 3 pairs each.
	if stats.TotalFrequency != 6 {
		t.Errorf("TotalFrequency = %d, want 6", stats.TotalFrequency)
	}
	if stats.StartingTokens != 1 {
		t.Errorf("StartingTokens = %d, want 1", stats.StartingTokens)
	}
}
