//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "plain text unchanged",
			input:  "hello world",
			expect: "hello world",
		},
		{
			name:   "empty string",
			input:  "",
			expect: "",
		},
		{
			name:   "surrounding whitespace trimmed",
			input:  "  hello world  ",
			expect: "hello world",
		},
		{
			name:   "control characters removed",
			input:  "hello\x00wor\x1fld",
			expect: "helloworld",
		},
		{
			name:   "newline and tab are controls",
			input:  "hello\nwor\tld",
			expect: "helloworld",
		},
		{
			name:   "noncharacters removed",
			input:  "a﷐b￾c",
			expect: "abc",
		},
		{
			name:   "only removed codepoints",
			input:  "\x00\x01﷐",
			expect: "",
		},
		{
			name:   "plane 16 noncharacter removed",
			input:  "a\U0010FFFFb",
			expect: "ab",
		},
		{
			name:   "format codepoints kept",
			input:  "a‍b",
			expect: "a‍b",
		},
		{
			name:   "private use codepoints kept",
			input:  "ab",
			expect: "ab",
		},
		{
			name:   "whitespace only",
			input:  "   ",
			expect: "",
		},
		{
			name:   "emoji and CJK kept",
			input:  "你好 👋",
			expect: "你好 👋",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)
			if result != tt.expect {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, result, tt.expect)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"hello world",
		"  padded  ",
		"mixed\x00controls\nhere",
		"你好 👋 world",
		"",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
