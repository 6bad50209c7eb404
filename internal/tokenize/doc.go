// Package tokenize splits raw command strings into argument vectors.
//
// Two strategies exist: a quote-aware tokenizer honoring POSIX shell
// quoting rules and a whitespace-only tokenizer for the platform class
// without a native quote-aware splitter. The asymmetry between the two is
// deliberate and documented rather than hidden inside conditionals; the
// appropriate strategy is selected from a platform capability value at
// construction time.
package tokenize
