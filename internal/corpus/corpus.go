//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package corpus reads and writes JSON-lines document streams.
package corpus

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// Document is one corpus row. Text carries raw text for the
// tokenizers; Vector carries a sparse representation for the
// converter. Either may be empty depending on the stream.
type Document struct {
	ID     string    `json:"id"`
	Text   string    `json:"text,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
}

// maxLineSize bounds a single JSONL line. Sparse vectors over large
// vocabularies produce long lines, so the cap is generous.
const maxLineSize = 256 * 1024 * 1024

// ReadAll reads every document from a JSON-lines stream. Blank lines
// are skipped; a malformed line fails with its line number.
func ReadAll(r io.Reader) ([]Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)

	var docs []Document
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		var doc Document
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse corpus line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return docs, nil
}

// Writer emits one JSON document per line.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a JSON-lines writer. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write marshals v and appends it as one line.
func (w *Writer) Write(v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output line: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush flushes buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
