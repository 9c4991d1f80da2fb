//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package corpus

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestReadAll(t *testing.T) {
	input := `{"id": "d1", "text": "hello world"}

{"id": "d2", "vector": [0.5, 0.0, 0.25]}
`
	docs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	expect := []Document{
		{ID: "d1", Text: "hello world"},
		{ID: "d2", Vector: []float32{0.5, 0.0, 0.25}},
	}
	if !reflect.DeepEqual(docs, expect) {
		t.Errorf("got %+v, want %+v", docs, expect)
	}
}

func TestReadAll_Empty(t *testing.T) {
	docs, err := ReadAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if docs != nil {
		t.Errorf("got %v, want nil", docs)
	}
}

func TestReadAll_MalformedLine(t *testing.T) {
	input := "{\"id\": \"d1\"}\nnot json\n"
	_, err := ReadAll(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	docs := []Document{
		{ID: "d1", Text: "hello"},
		{ID: "d2", Vector: []float32{1, 2}},
	}
	for _, doc := range docs {
		if err := w.Write(doc); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	back, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(back, docs) {
		t.Errorf("round trip: got %+v, want %+v", back, docs)
	}
}
