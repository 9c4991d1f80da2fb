//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordOptions controls a single word-tokenization call.
type WordOptions struct {
	// RemoveStopwords drops tokens found in the tokenizer's stop-word
	// set. Membership is tested by exact string match after any
	// lowercasing.
	RemoveStopwords bool

	// Lowercase lowercases the whole text before segmentation, using
	// the generic (und) locale.
	Lowercase bool
}

// DefaultWordOptions returns the default tokenization options:
// lowercase on, stop-word removal off. The defaults align with what
// sparse representation models expect as input.
func DefaultWordOptions() WordOptions {
	return WordOptions{RemoveStopwords: false, Lowercase: true}
}

// WordTokenizer segments text into word tokens at Unicode word
// boundaries. The segmenter and stop-word set are bound at
// construction and never mutated afterwards, so a single tokenizer is
// safe for concurrent use.
type WordTokenizer struct {
	segmenter Segmenter
	stopWords map[string]bool
}

// NewWordTokenizer creates a word tokenizer with the default UAX #29
// segmenter and the default English stop-word set.
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{
		segmenter: UAX29Segmenter{},
		stopWords: DefaultStopWords,
	}
}

// NewWordTokenizerWithStopWords creates a word tokenizer with a custom
// stop-word set. The caller must not mutate the set afterwards.
func NewWordTokenizerWithStopWords(stopWords map[string]bool) *WordTokenizer {
	return &WordTokenizer{
		segmenter: UAX29Segmenter{},
		stopWords: stopWords,
	}
}

// NewWordTokenizerWithSegmenter creates a word tokenizer with a custom
// word-boundary engine and stop-word set.
func NewWordTokenizerWithSegmenter(segmenter Segmenter, stopWords map[string]bool) *WordTokenizer {
	return &WordTokenizer{
		segmenter: segmenter,
		stopWords: stopWords,
	}
}

// Tokenize cuts text into word tokens.
//
// Pipeline:
//  1. Sanitize: remove control, surrogate, and noncharacter codepoints
//     and trim surrounding whitespace.
//  2. Lowercase the full text if requested (segmentation sees the
//     lowercased text).
//  3. Cut at UAX #29 word boundaries, trimming each segment and
//     dropping whitespace-only segments.
//
// The result never contains empty or whitespace-only tokens; it is nil
// when nothing survives.
func (t *WordTokenizer) Tokenize(text string, opts WordOptions) []string {
	clean := Sanitize(text)
	if clean == "" {
		return nil
	}

	if opts.Lowercase {
		// A cases.Caser is stateful; build one per call.
		clean = cases.Lower(language.Und).String(clean)
	}

	var tokens []string
	for _, segment := range t.segmenter.Segment(clean) {
		token := strings.TrimSpace(segment)
		if token == "" {
			continue
		}
		if opts.RemoveStopwords && t.stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TokenizeBatch tokenizes each text independently and returns the
// results in input order. Rows are processed in parallel; the result
// is identical to calling Tokenize on every element.
func (t *WordTokenizer) TokenizeBatch(texts []string, opts WordOptions) [][]string {
	out := make([][]string, len(texts))
	parallelRows(len(texts), func(i int) {
		out[i] = t.Tokenize(texts[i], opts)
	})
	return out
}
