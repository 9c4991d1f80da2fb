//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package converter quantizes sparse embedding vectors over a fixed
// vocabulary into integer term-frequency documents for lexical search
// engines, either as token-to-count mappings or as whitespace-joined
// pseudo text.
package converter

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/x448/float16"
	"golang.org/x/sync/errgroup"

	"github.com/ma787639046/sparse-emb-util/internal/vocab"
)

var (
	// ErrInvalidInput marks invalid call arguments, such as a
	// non-positive quantization factor.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidShape marks malformed input tensors: ragged batches,
	// misaligned flat buffers, or non-positive column counts.
	ErrInvalidShape = errors.New("invalid shape")
)

// UnknownVocabIDError reports an id-to-token resolution miss. Row is
// the batch row being converted when the miss occurred.
type UnknownVocabIDError struct {
	Row int
	ID  int
}

func (e *UnknownVocabIDError) Error() string {
	return fmt.Sprintf("token id %d not found in vocab (row %d)", e.ID, e.Row)
}

// Sentinel keys inserted when a document quantizes to nothing.
// Downstream indexers reject empty documents, so every produced
// document carries at least one entry.
const (
	PadToken = "[PAD]"
	PadID    = "-1"
)

// Options controls a single conversion call.
type Options struct {
	// QuantizationFactor is the positive integer upscaling factor.
	// Quantized value = roundHalfToEven(weight * factor).
	QuantizationFactor int

	// ConvertIDToToken resolves vocabulary ids to token strings via
	// the converter's vocabulary. When false, keys are the decimal id
	// strings, which are guaranteed query-syntax safe.
	ConvertIDToToken bool

	// AllowNegativeValues preserves negative weights. When false,
	// weights are clamped to max(w, 0) before quantization.
	AllowNegativeValues bool

	// NegativePrefix prefixes keys of negative entries, since sparse
	// term frequencies cannot themselves be negative.
	NegativePrefix string
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		QuantizationFactor:  1000,
		ConvertIDToToken:    false,
		AllowNegativeValues: false,
		NegativePrefix:      "neg_",
	}
}

// Converter converts batches of sparse vectors into frequency
// documents. The vocabulary is bound at construction, borrowed
// read-only, and shared safely across concurrent calls.
type Converter struct {
	vocab *vocab.Map
}

// New creates a converter without a vocabulary. Conversions with
// ConvertIDToToken set will fail on every nonzero entry.
func New() *Converter {
	return &Converter{}
}

// NewWithVocab creates a converter bound to a vocabulary.
func NewWithVocab(v *vocab.Map) *Converter {
	return &Converter{vocab: v}
}

// entry is one surviving (key, frequency) pair of a document, in
// ascending vocabulary-id order. A negative entry replaces the
// positive entry for its id, so keys are unique per document.
type entry struct {
	key  string
	freq int
}

func validateOptions(opts Options) error {
	if opts.QuantizationFactor < 1 {
		return fmt.Errorf("%w: quantization factor must be positive, got %d", ErrInvalidInput, opts.QuantizationFactor)
	}
	for _, r := range opts.NegativePrefix {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: negative prefix %q contains whitespace", ErrInvalidInput, opts.NegativePrefix)
		}
	}
	return nil
}

// checkShape rejects ragged batches. Rank greater than 2 is
// unrepresentable in the typed API; raggedness is the remaining shape
// error.
func checkShape[T any](reps [][]T) error {
	if len(reps) == 0 {
		return nil
	}
	cols := len(reps[0])
	for i, row := range reps {
		if len(row) != cols {
			return fmt.Errorf("%w: ragged batch: row %d has %d columns, want %d", ErrInvalidShape, i, len(row), cols)
		}
	}
	return nil
}

// Reshape views a flat row-major buffer as a batch of rows with the
// given column count. The buffer length must divide evenly.
func Reshape[T any](data []T, cols int) ([][]T, error) {
	if cols < 1 {
		return nil, fmt.Errorf("%w: column count must be positive, got %d", ErrInvalidShape, cols)
	}
	if len(data)%cols != 0 {
		return nil, fmt.Errorf("%w: buffer of %d values is not divisible by %d columns", ErrInvalidShape, len(data), cols)
	}
	rows := make([][]T, 0, len(data)/cols)
	for start := 0; start < len(data); start += cols {
		rows = append(rows, data[start:start+cols])
	}
	return rows, nil
}

// rowEntries quantizes one vector. Entries that round to exactly zero
// are dropped; an empty result gets the pad sentinel.
func rowEntries[T any](c *Converter, row []T, rowIdx int, toFloat64 func(T) float64, opts Options) ([]entry, error) {
	factor := float64(opts.QuantizationFactor)

	var entries []entry
	for id, value := range row {
		w := toFloat64(value)
		if !opts.AllowNegativeValues && w < 0 {
			w = 0
		}

		q := int(math.RoundToEven(w * factor))
		if q == 0 {
			continue
		}

		var key string
		if opts.ConvertIDToToken {
			token, ok := c.vocab.Token(id)
			if !ok {
				return nil, &UnknownVocabIDError{Row: rowIdx, ID: id}
			}
			key = token
		} else {
			key = strconv.Itoa(id)
		}

		if q < 0 {
			key = opts.NegativePrefix + key
			q = -q
		}
		entries = append(entries, entry{key: key, freq: q})
	}

	if len(entries) == 0 {
		if opts.ConvertIDToToken {
			entries = append(entries, entry{key: PadToken, freq: 1})
		} else {
			entries = append(entries, entry{key: PadID, freq: 1})
		}
	}
	return entries, nil
}

// convertBatch quantizes every row in parallel. Any row error fails
// the whole call; no partial results are returned.
func convertBatch[T any](c *Converter, reps [][]T, toFloat64 func(T) float64, opts Options) ([][]entry, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if err := checkShape(reps); err != nil {
		return nil, err
	}

	out := make([][]entry, len(reps))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range reps {
		g.Go(func() error {
			entries, err := rowEntries(c, reps[i], i, toFloat64, opts)
			if err != nil {
				return err
			}
			out[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func float32To64(v float32) float64 {
	return float64(v)
}

func float16To64(v float16.Float16) float64 {
	return float64(v.Float32())
}

func entriesToMap(entries []entry) map[string]int {
	doc := make(map[string]int, len(entries))
	for _, e := range entries {
		doc[e.key] = e.freq
	}
	return doc
}

// entriesToText repeats each key frequency times, single-space joined,
// in ascending vocabulary-id order. Keys never contain whitespace, so
// downstream whitespace re-splitting recovers exactly
// sum(frequencies) terms.
func entriesToText(entries []entry) string {
	var b strings.Builder
	for _, e := range entries {
		for i := 0; i < e.freq; i++ {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(e.key)
		}
	}
	return b.String()
}

// FrequencyDocs converts a float32 batch to one frequency mapping per
// row, in batch order. Every mapping has unique keys, strictly
// positive frequencies, and at least one entry.
func (c *Converter) FrequencyDocs(reps [][]float32, opts Options) ([]map[string]int, error) {
	entries, err := convertBatch(c, reps, float32To64, opts)
	if err != nil {
		return nil, err
	}
	docs := make([]map[string]int, len(entries))
	for i, e := range entries {
		docs[i] = entriesToMap(e)
	}
	return docs, nil
}

// FrequencyDocsF16 is FrequencyDocs for IEEE 754 binary16 input.
// Reduced precision only affects the rounding input, not the
// conversion contract.
func (c *Converter) FrequencyDocsF16(reps [][]float16.Float16, opts Options) ([]map[string]int, error) {
	entries, err := convertBatch(c, reps, float16To64, opts)
	if err != nil {
		return nil, err
	}
	docs := make([]map[string]int, len(entries))
	for i, e := range entries {
		docs[i] = entriesToMap(e)
	}
	return docs, nil
}

// FrequencyDoc converts a single vector, auto-promoted to a batch of
// size one.
func (c *Converter) FrequencyDoc(rep []float32, opts Options) (map[string]int, error) {
	docs, err := c.FrequencyDocs([][]float32{rep}, opts)
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// FrequencyDocF16 converts a single binary16 vector, auto-promoted to
// a batch of size one.
func (c *Converter) FrequencyDocF16(rep []float16.Float16, opts Options) (map[string]int, error) {
	docs, err := c.FrequencyDocsF16([][]float16.Float16{rep}, opts)
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// PseudoText converts a float32 batch to one pseudo-text document per
// row: every key repeated frequency times, joined by single spaces, so
// a plain-text engine's term statistics reproduce the quantized
// vector.
func (c *Converter) PseudoText(reps [][]float32, opts Options) ([]string, error) {
	entries, err := convertBatch(c, reps, float32To64, opts)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = entriesToText(e)
	}
	return texts, nil
}

// PseudoTextF16 is PseudoText for IEEE 754 binary16 input.
func (c *Converter) PseudoTextF16(reps [][]float16.Float16, opts Options) ([]string, error) {
	entries, err := convertBatch(c, reps, float16To64, opts)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = entriesToText(e)
	}
	return texts, nil
}
