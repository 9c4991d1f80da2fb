//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package tokenizer provides the text tokenizers used to prepare
// documents for lexical indexing: a UAX #29 word-boundary tokenizer
// and a regex-based tokenizer compatible with the DPR/DrQA reference
// tokenization.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// keptCategories is the union of general categories preserved by the
// sanitizer. The aggregate unicode.C table also claims unassigned (Cn)
// codepoints such as the noncharacters, so the kept C subcategories
// (Cf, Co) are listed individually instead. A rune belonging to no
// listed table is Cn and gets removed.
var keptCategories = []*unicode.RangeTable{
	unicode.L, unicode.M, unicode.N,
	unicode.P, unicode.S, unicode.Z,
	unicode.Cf, unicode.Co,
}

// stripped reports whether a rune must be removed before segmentation:
// control (Cc), surrogate (Cs), and unassigned/noncharacter (Cn)
// codepoints.
func stripped(r rune) bool {
	if unicode.Is(unicode.Cc, r) || unicode.Is(unicode.Cs, r) {
		return true
	}
	return !unicode.In(r, keptCategories...)
}

// Sanitize removes control, surrogate, and noncharacter codepoints
// from text, then trims leading and trailing whitespace. Sanitizing
// already-sanitized text is a no-op.
func Sanitize(text string) string {
	// A runes.Transformer carries state, so build one per call rather
	// than sharing it across goroutines.
	clean, _, err := transform.String(runes.Remove(runes.Predicate(stripped)), text)
	if err != nil {
		// runes.Remove never yields a transform error; fall back to
		// the input so a sanitize call can never lose the document.
		clean = text
	}
	return strings.TrimSpace(clean)
}
