package markov

import (
	"errors"
	"reflect"
	"testing"
)

// selfLoopModel builds a pathological model where "a" transitions to itself
// with probability 1.0 and the end marker is unreachable.
func selfLoopModel() *TransitionModel {
	return BuildModel([]Sentence{
		{StartToken, "a"},
		{"a", "a"},
	})
}

// deadEndModel builds a malformed model where "a" has no successors at all.
func deadEndModel() *TransitionModel {
	return BuildModel([]Sentence{
		{StartToken, "a"},
	})
}

func TestBabbleSingleSentenceCorpus(t *testing.T) {
	model := trainTest(t, "Patience.")
	b := NewBabbler(model, WithSeed(1))

	for i := 0; i < 10; i++ {
		got, err := b.Babble()
		if err != nil {
			t.Fatalf("Babble() failed: %v", err)
		}
		if got != "Patience." {
			t.Fatalf(`Babble() = %q, want "Patience."`, got)
		}
	}
}

func TestBabbleExcludesMarkers(t *testing.T) {
	model := trainTest(t, "one fish two fish.\nred fish blue fish.")
	b := NewBabbler(model, WithSeed(7))

	tokens, err := b.Sample()
	if err != nil {
		t.Fatalf("Sample() failed: %v", err)
	}
	for _, tok := range tokens {
		if tok == StartToken || tok == EndToken {
			t.Errorf("Sample() emitted marker token %q", tok)
		}
	}
}

func TestBabbleDeterministicWithSeed(t *testing.T) {
	const corpus = "one fish two fish.\nred fish blue fish.\nso many fish!"

	run := func(seed uint64) []string {
		b := NewBabbler(trainTest(t, corpus), WithSeed(seed))
		out, err := b.BabbleMany(20)
		if err != nil {
			t.Fatalf("BabbleMany() failed: %v", err)
		}
		return out
	}

	first := run(42)
	second := run(42)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different outputs:\n%v\n%v", first, second)
	}
}

func TestBabbleManyProportions(t *testing.T) {
	model := trainTest(t, "I am wise.\nI am strong.")
	b := NewBabbler(model, WithSeed(99))

	sentences, err := b.BabbleMany(100)
	if err != nil {
		t.Fatalf("BabbleMany() failed: %v", err)
	}
	if len(sentences) != 100 {
		t.Fatalf("BabbleMany(100) returned %d sentences", len(sentences))
	}

	counts := make(map[string]int)
	for _, s := range sentences {
		counts[s]++
	}
	for s := range counts {
		if s != "I am wise." && s != "I am strong." {
			t.Errorf("unexpected sentence %q", s)
		}
	}
	// Each variant should show up at least 20% of the time.
	if counts["I am wise."] < 20 || counts["I am strong."] < 20 {
		t.Errorf("lopsided sampling: %v", counts)
	}
}

func TestBabbleEmptyModel(t *testing.T) {
	b := NewBabbler(BuildModel(nil), WithSeed(1))
	if _, err := b.Babble(); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("Babble() error = %v, want ErrEmptyModel", err)
	}
}

func TestBabbleDeadEnd(t *testing.T) {
	b := NewBabbler(deadEndModel(), WithSeed(1))
	if _, err := b.Babble(); !errors.Is(err, ErrDeadEndToken) {
		t.Errorf("Babble() error = %v, want ErrDeadEndToken", err)
	}
}

func TestBabbleOverflow(t *testing.T) {
	b := NewBabbler(selfLoopModel(), WithSeed(1), WithMaxSteps(50))
	if _, err := b.Babble(); !errors.Is(err, ErrGenerationOverflow) {
		t.Errorf("Babble() error = %v, want ErrGenerationOverflow", err)
	}
}

func TestBabbleManyStopsAtFirstError(t *testing.T) {
	b := NewBabbler(selfLoopModel(), WithSeed(1), WithMaxSteps(10))
	sentences, err := b.BabbleMany(5)
	if !errors.Is(err, ErrGenerationOverflow) {
		t.Fatalf("BabbleMany() error = %v, want ErrGenerationOverflow", err)
	}
	if len(sentences) != 0 {
		t.Errorf("expected no completed sentences, got %v", sentences)
	}
}

func TestWalk(t *testing.T) {
	model := trainTest(t, "Patience.")
	b := NewBabbler(model, WithSeed(3))

	// The end marker is absorbing, so the tail of the walk repeats it.
	got, err := b.Walk(StartToken, 5)
	if err != nil {
		t.Fatalf("Walk() failed: %v", err)
	}
	want := []Token{StartToken, "Patience.", EndToken, EndToken, EndToken}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}

	if got, err := b.Walk(StartToken, 0); err != nil || got != nil {
		t.Errorf("Walk(start, 0) = %v, %v; want nil, nil", got, err)
	}
}

func TestPath(t *testing.T) {
	model := trainTest(t, "Patience.")
	b := NewBabbler(model, WithSeed(3))

	got, err := b.Path(StartToken, EndToken)
	if err != nil {
		t.Fatalf("Path() failed: %v", err)
	}
	want := []Token{StartToken, "Patience.", EndToken}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Path() = %v, want %v", got, want)
	}

	got, err = b.Path(StartToken, "Patience.")
	if err != nil {
		t.Fatalf("Path() to intermediate token failed: %v", err)
	}
	if !reflect.DeepEqual(got, []Token{StartToken, "Patience."}) {
		t.Errorf("Path() = %v, want [%v Patience.]", got, StartToken)
	}
}

func TestTemperatureZeroIsDeterministic(t *testing.T) {
	// "b" follows "a" twice, "c" once; zero temperature always picks "b".
	model := trainTest(t, "a b\na b\na c")
	b := NewBabbler(model, WithSeed(5), WithTemperature(0))

	for i := 0; i < 10; i++ {
		got, err := b.Babble()
		if err != nil {
			t.Fatalf("Babble() failed: %v", err)
		}
		if got != "a b" {
			t.Fatalf(`Babble() with temperature 0 = %q, want "a b"`, got)
		}
	}
}

func TestTopKRestrictsChoices(t *testing.T) {
	// "x" is by far the most frequent successor of "a"; top-1 must always pick it.
	model := trainTest(t, "a x\na x\na x\na y\na z")
	b := NewBabbler(model, WithSeed(11), WithTopK(1))

	for i := 0; i < 20; i++ {
		got, err := b.Babble()
		if err != nil {
			t.Fatalf("Babble() failed: %v", err)
		}
		if got != "a x" {
			t.Fatalf(`Babble() with top-1 = %q, want "a x"`, got)
		}
	}
}
