//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultRegexPattern is the word-boundary pattern from the
// Facebook DPR / DrQA tokenization:
//
//	[\p{L}\p{N}\p{M}]+  L - Letter; N - Number; M - Mark (maximal run)
//	[^\p{Z}\p{C}]       Z - Separator; C - Control (single character)
//
// The pattern and the NFD normalization form together are the fixed
// rule artifact ports must reproduce token for token.
const DefaultRegexPattern = `(?im)([\p{L}\p{N}\p{M}]+)|([^\p{Z}\p{C}])`

// RegexOptions configures a RegexTokenizer.
type RegexOptions struct {
	// Pattern is the token pattern. Empty selects DefaultRegexPattern.
	Pattern string

	// Uncased lowercases each token after splitting. Lowercasing
	// happens post-segmentation: case folding before pattern matching
	// can change run boundaries for scripts with case-dependent letter
	// classification.
	Uncased bool

	// Normalize applies Unicode normalization before tokenizing.
	Normalize bool

	// NormalizationForm is one of "nfc", "nfd", "nfkc", "nfkd"
	// (case-insensitive).
	NormalizationForm string
}

// DefaultRegexOptions returns the reference defaults: default pattern,
// uncased, NFD normalization.
func DefaultRegexOptions() RegexOptions {
	return RegexOptions{
		Pattern:           DefaultRegexPattern,
		Uncased:           true,
		Normalize:         true,
		NormalizationForm: "nfd",
	}
}

// RegexTokenizer tokenizes text with an explicit character-class
// pattern rather than a word-boundary algorithm. The compiled pattern
// and normalization form are immutable after construction, so a single
// tokenizer is safe for concurrent use.
type RegexTokenizer struct {
	re        *regexp.Regexp
	uncased   bool
	normalize bool
	form      norm.Form
}

// NewRegexTokenizer creates a regex tokenizer. It fails when the
// pattern does not compile or the normalization form is unknown.
func NewRegexTokenizer(opts RegexOptions) (*RegexTokenizer, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultRegexPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile token pattern: %w", err)
	}

	var form norm.Form
	switch strings.ToLower(opts.NormalizationForm) {
	case "nfc":
		form = norm.NFC
	case "nfd":
		form = norm.NFD
	case "nfkc":
		form = norm.NFKC
	case "nfkd":
		form = norm.NFKD
	default:
		if opts.Normalize {
			return nil, fmt.Errorf("invalid normalization form %q", opts.NormalizationForm)
		}
	}

	return &RegexTokenizer{
		re:        re,
		uncased:   opts.Uncased,
		normalize: opts.Normalize,
		form:      form,
	}, nil
}

// NewDefaultRegexTokenizer creates a regex tokenizer with the
// reference defaults.
func NewDefaultRegexTokenizer() *RegexTokenizer {
	t, err := NewRegexTokenizer(DefaultRegexOptions())
	if err != nil {
		// The defaults are constants; they always compile.
		panic(err)
	}
	return t
}

// Tokenize performs pattern-based tokenization on text. Letter,
// number, and mark runs become single tokens; every other
// non-separator, non-control character becomes its own
// single-character token. Whitespace and control characters are
// boundary-only and never emitted.
func (t *RegexTokenizer) Tokenize(text string) []string {
	if t.normalize {
		text = t.form.String(text)
	}

	tokens := t.re.FindAllString(text, -1)
	if len(tokens) == 0 {
		return nil
	}

	if t.uncased {
		lower := cases.Lower(language.Und)
		for i, token := range tokens {
			tokens[i] = lower.String(token)
		}
	}
	return tokens
}

// TokenizeBatch tokenizes each text independently and returns the
// results in input order. Rows are processed in parallel; the result
// is identical to calling Tokenize on every element.
func (t *RegexTokenizer) TokenizeBatch(texts []string) [][]string {
	out := make([][]string, len(texts))
	parallelRows(len(texts), func(i int) {
		out[i] = t.Tokenize(texts[i])
	})
	return out
}
