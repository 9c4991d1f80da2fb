//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package vocab provides the immutable vocabulary-id-to-token table
// consumed by the sparse representation converter.
package vocab

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/bytedance/sonic"
)

// ErrInvalidVocab marks vocabulary validation failures at
// construction.
var ErrInvalidVocab = errors.New("invalid vocabulary")

// Map is an immutable mapping from vocabulary id to token string.
// The zero of id space is valid; absence is reported distinctly from
// an empty token. A nil *Map behaves as an empty vocabulary.
type Map struct {
	tokens map[int]string
}

// New builds a vocabulary from an id-to-token mapping. Ids must be
// non-negative and tokens non-empty with no whitespace or control
// characters: tokens are emitted into whitespace-joined pseudo text
// that downstream engines re-split on whitespace.
func New(tokens map[int]string) (*Map, error) {
	owned := make(map[int]string, len(tokens))
	for id, token := range tokens {
		if id < 0 {
			return nil, fmt.Errorf("%w: negative token id %d", ErrInvalidVocab, id)
		}
		if token == "" {
			return nil, fmt.Errorf("%w: empty token for id %d", ErrInvalidVocab, id)
		}
		for _, r := range token {
			if unicode.IsSpace(r) || unicode.IsControl(r) {
				return nil, fmt.Errorf("%w: token %q for id %d contains whitespace or control characters", ErrInvalidVocab, token, id)
			}
		}
		owned[id] = token
	}
	return &Map{tokens: owned}, nil
}

// Token returns the token for id. The second result is false when the
// id is absent from the vocabulary.
func (m *Map) Token(id int) (string, bool) {
	if m == nil {
		return "", false
	}
	token, ok := m.tokens[id]
	return token, ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tokens)
}

// Load reads a HuggingFace-style vocab.json file mapping token string
// to integer id, inverts it, and validates the result. Duplicate ids
// across tokens fail.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocab file: %w", err)
	}

	var tokenToID map[string]int
	if err := sonic.Unmarshal(data, &tokenToID); err != nil {
		return nil, fmt.Errorf("failed to parse vocab file: %w", err)
	}

	idToToken := make(map[int]string, len(tokenToID))
	for token, id := range tokenToID {
		if existing, ok := idToToken[id]; ok {
			return nil, fmt.Errorf("%w: id %d mapped by both %q and %q", ErrInvalidVocab, id, existing, token)
		}
		idToToken[id] = token
	}
	return New(idToToken)
}
