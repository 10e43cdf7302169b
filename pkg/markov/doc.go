/*
Package markov builds first-order Markov chain models over word sequences and
uses them to generate novel, stylistically similar sentences ("babbling").

Training is a single pass: a corpus with one sentence per line is tokenized
into START/END-bracketed token sequences, adjacent-pair transitions are
counted, and the counts are normalized once into per-source probability
distributions. The resulting TransitionModel is immutable, so any number of
Babblers and callers may sample from it concurrently.

Generation is a random walk from the start marker, drawing one successor per
step until the end marker is reached or a configurable step bound trips. Each
Babbler owns an explicit random source, so seeded runs are fully reproducible.
*/
package markov
