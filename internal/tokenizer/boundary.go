//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/rivo/uniseg"
)

// Segmenter cuts text at Unicode word boundaries (UAX #29). It returns
// every inter-boundary segment in order, including whitespace runs and
// punctuation; callers filter what they do not want. Implementations
// must be stateless and safe for concurrent use.
//
// Different conforming engines may legally disagree on some boundaries
// (emoji clusters adjacent to punctuation, dictionary-based CJK
// cutting). Output is only guaranteed stable for a fixed Segmenter
// implementation.
type Segmenter interface {
	Segment(text string) []string
}

// UAX29Segmenter segments with github.com/clipperhouse/uax29. This is
// the default engine: default UAX #29 rules, no dictionary model, so
// CJK ideographs segment one per token.
type UAX29Segmenter struct{}

// Segment implements Segmenter.
func (UAX29Segmenter) Segment(text string) []string {
	var segments []string
	tokens := words.FromString(text)
	for tokens.Next() {
		segments = append(segments, tokens.Value())
	}
	return segments
}

// UnisegSegmenter segments with github.com/rivo/uniseg. Provided as an
// alternate engine; its boundaries are not asserted equal to the
// default engine's.
type UnisegSegmenter struct{}

// Segment implements Segmenter.
func (UnisegSegmenter) Segment(text string) []string {
	var segments []string
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		segments = append(segments, word)
	}
	return segments
}
