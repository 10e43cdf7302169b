/*
Package corpus provides a SQLite-backed store for speaker corpora: the raw,
newline-delimited training text that the markov package consumes. Each
speaker's lines are kept in insertion order so that rebuilding a model from
the store is deterministic. Only the raw text is persisted; trained models
are always rebuilt in memory.
*/
package corpus
