//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegexTokenizer_Tokenize(t *testing.T) {
	tok := NewDefaultRegexTokenizer()

	// Reference sequence for mixed multilingual input: letter/number/
	// mark runs are single tokens, other visible characters are
	// single-character tokens, whitespace and controls are boundaries.
	text := "Hello, 世界! 123 😊\nAnother Line!"
	expect := []string{"hello", ",", "世界", "!", "123", "😊", "another", "line", "!"}

	result := tok.Tokenize(text)
	if !reflect.DeepEqual(result, expect) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, result, expect)
	}
}

func TestRegexTokenizer_Cased(t *testing.T) {
	tok, err := NewRegexTokenizer(RegexOptions{
		Uncased:           false,
		Normalize:         true,
		NormalizationForm: "nfd",
	})
	if err != nil {
		t.Fatalf("NewRegexTokenizer failed: %v", err)
	}

	result := tok.Tokenize("Hello World")
	expect := []string{"Hello", "World"}
	if !reflect.DeepEqual(result, expect) {
		t.Errorf("got %v, want %v", result, expect)
	}
}

func TestRegexTokenizer_NFDDecomposition(t *testing.T) {
	tok := NewDefaultRegexTokenizer()

	// NFD decomposes é into e + combining acute; the mark class keeps
	// the decomposed run a single token.
	result := tok.Tokenize("Café")
	expect := []string{"café"}
	if !reflect.DeepEqual(result, expect) {
		t.Errorf("got %q, want %q", result, expect)
	}
}

func TestRegexTokenizer_NormalizationForms(t *testing.T) {
	for _, form := range []string{"nfc", "nfd", "nfkc", "nfkd", "NFD"} {
		_, err := NewRegexTokenizer(RegexOptions{Normalize: true, NormalizationForm: form})
		if err != nil {
			t.Errorf("form %q rejected: %v", form, err)
		}
	}

	_, err := NewRegexTokenizer(RegexOptions{Normalize: true, NormalizationForm: "nfx"})
	if err == nil {
		t.Error("expected error for invalid normalization form")
	}
}

func TestRegexTokenizer_InvalidPattern(t *testing.T) {
	_, err := NewRegexTokenizer(RegexOptions{
		Pattern:           "([unclosed",
		Normalize:         true,
		NormalizationForm: "nfd",
	})
	if err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestRegexTokenizer_Empty(t *testing.T) {
	tok := NewDefaultRegexTokenizer()

	for _, input := range []string{"", "   ", "\n\t"} {
		if result := tok.Tokenize(input); result != nil {
			t.Errorf("Tokenize(%q) = %v, want nil", input, result)
		}
	}
}

// Re-tokenizing a space-joined token list with a cased tokenizer
// recovers the same list, since tokens never contain whitespace.
func TestRegexTokenizer_RejoinIdempotent(t *testing.T) {
	uncased := NewDefaultRegexTokenizer()
	cased, err := NewRegexTokenizer(RegexOptions{
		Uncased:           false,
		Normalize:         true,
		NormalizationForm: "nfd",
	})
	if err != nil {
		t.Fatalf("NewRegexTokenizer failed: %v", err)
	}

	texts := []string{
		"Hello, 世界! 123 😊\nAnother Line!",
		"Café au lait, s'il vous plaît.",
		"여기에 한국어 문장이 있습니다.!",
	}
	for _, text := range texts {
		tokens := uncased.Tokenize(text)
		rejoined := strings.Join(tokens, " ")
		recovered := cased.Tokenize(rejoined)
		if !reflect.DeepEqual(recovered, tokens) {
			t.Errorf("rejoin not idempotent for %q: %v != %v", text, recovered, tokens)
		}
	}
}

func TestRegexTokenizer_BatchMatchesSingle(t *testing.T) {
	tok := NewDefaultRegexTokenizer()

	texts := []string{
		"Hello, 世界! 123 😊\nAnother Line!",
		"这是一句中文！。This is an English sentence.",
		"",
		"Hello World!!. 这是一个测试句子。",
		"サンプル文です。",
	}

	batch := tok.TokenizeBatch(texts)
	if len(batch) != len(texts) {
		t.Fatalf("batch returned %d rows, want %d", len(batch), len(texts))
	}
	for i, text := range texts {
		single := tok.Tokenize(text)
		if !reflect.DeepEqual(batch[i], single) {
			t.Errorf("row %d: batch %v != single %v", i, batch[i], single)
		}
	}
}
