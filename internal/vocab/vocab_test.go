//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	v, err := New(map[int]string{0: "token0", 1: "token1"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	token, ok := v.Token(0)
	if !ok || token != "token0" {
		t.Errorf("Token(0) = %q, %v, want token0, true", token, ok)
	}
	if _, ok := v.Token(2); ok {
		t.Error("Token(2) reported present for an absent id")
	}
	if v.Len() != 2 {
		t.Errorf("Len() = %d, want 2", v.Len())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		tokens map[int]string
	}{
		{"negative id", map[int]string{-1: "token"}},
		{"empty token", map[int]string{0: ""}},
		{"token with space", map[int]string{0: "two words"}},
		{"token with tab", map[int]string{0: "a\tb"}},
		{"token with control", map[int]string{0: "a\x00b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.tokens); !errors.Is(err, ErrInvalidVocab) {
				t.Errorf("got %v, want ErrInvalidVocab", err)
			}
		})
	}
}

func TestNilMap(t *testing.T) {
	var v *Map
	if _, ok := v.Token(0); ok {
		t.Error("nil map reported a token present")
	}
	if v.Len() != 0 {
		t.Errorf("nil map Len() = %d, want 0", v.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(`{"token0": 0, "token1": 1, "[PAD]": 2}`), 0o644); err != nil {
		t.Fatalf("write vocab file: %v", err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
	if token, ok := v.Token(1); !ok || token != "token1" {
		t.Errorf("Token(1) = %q, %v, want token1, true", token, ok)
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(`{"a": 0, "b": 0}`), 0o644); err != nil {
		t.Fatalf("write vocab file: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidVocab) {
		t.Errorf("got %v, want ErrInvalidVocab", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
