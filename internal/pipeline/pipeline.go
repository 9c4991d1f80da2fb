//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline orchestrates the corpus processing modes of the
// command line tool: read a JSON-lines stream, transform every
// document with one of the batch APIs, write order-preserving
// JSON-lines results.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ma787639046/sparse-emb-util/internal/config"
	"github.com/ma787639046/sparse-emb-util/internal/converter"
	"github.com/ma787639046/sparse-emb-util/internal/corpus"
	"github.com/ma787639046/sparse-emb-util/internal/tokenizer"
	"github.com/ma787639046/sparse-emb-util/internal/vocab"
)

// Mode selects the transformation a Runner applies.
type Mode string

const (
	// ModeTokenize cuts document text at Unicode word boundaries.
	ModeTokenize Mode = "tokenize"

	// ModeRegexTokenize cuts document text with the regex tokenizer.
	ModeRegexTokenize Mode = "regex-tokenize"

	// ModeConvert quantizes document vectors to frequency mappings.
	ModeConvert Mode = "convert"

	// ModePseudoText quantizes document vectors to pseudo text.
	ModePseudoText Mode = "pseudo-text"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTokenize, ModeRegexTokenize, ModeConvert, ModePseudoText:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Runner executes one processing mode over a document stream. All
// components are built once from configuration and shared read-only
// across the batch workers.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	wordTok  *tokenizer.WordTokenizer
	regexTok *tokenizer.RegexTokenizer
	conv     *converter.Converter
}

// NewRunner builds a runner from configuration: stop words, boundary
// engine, regex tokenizer, and vocabulary are all resolved here so a
// bad configuration fails before any input is read.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	stopWords := tokenizer.DefaultStopWords
	if cfg.Tokenizer.StopwordsFile != "" {
		loaded, err := tokenizer.LoadStopWords(cfg.Tokenizer.StopwordsFile)
		if err != nil {
			return nil, err
		}
		stopWords = loaded
	}

	var segmenter tokenizer.Segmenter = tokenizer.UAX29Segmenter{}
	if cfg.Tokenizer.Engine == "uniseg" {
		segmenter = tokenizer.UnisegSegmenter{}
	}
	wordTok := tokenizer.NewWordTokenizerWithSegmenter(segmenter, stopWords)

	regexTok, err := tokenizer.NewRegexTokenizer(tokenizer.RegexOptions{
		Uncased:           cfg.RegexTokenizer.Uncased,
		Normalize:         true,
		NormalizationForm: cfg.RegexTokenizer.NormalizationForm,
	})
	if err != nil {
		return nil, err
	}

	conv := converter.New()
	if cfg.Converter.VocabFile != "" {
		v, err := vocab.Load(cfg.Converter.VocabFile)
		if err != nil {
			return nil, err
		}
		logger.Info("vocabulary loaded",
			"path", cfg.Converter.VocabFile,
			"entries", v.Len())
		conv = converter.NewWithVocab(v)
	}

	return &Runner{
		cfg:      cfg,
		logger:   logger,
		wordTok:  wordTok,
		regexTok: regexTok,
		conv:     conv,
	}, nil
}

// tokensLine is one output row of the tokenize modes.
type tokensLine struct {
	ID     string   `json:"id"`
	Tokens []string `json:"tokens"`
}

// repLine is one output row of the convert mode.
type repLine struct {
	ID  string         `json:"id"`
	Rep map[string]int `json:"rep"`
}

// textLine is one output row of the pseudo-text mode.
type textLine struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Run reads every document from in, applies the mode's batch
// transformation, and writes one JSON line per document to out in
// input order. Any failure aborts the whole run.
func (r *Runner) Run(mode Mode, in io.Reader, out io.Writer) error {
	start := time.Now()

	docs, err := corpus.ReadAll(in)
	if err != nil {
		return err
	}
	r.logger.Info("corpus loaded", "documents", len(docs), "mode", mode)

	w := corpus.NewWriter(out)

	switch mode {
	case ModeTokenize, ModeRegexTokenize:
		texts := make([]string, len(docs))
		for i, doc := range docs {
			texts[i] = doc.Text
		}

		var tokenLists [][]string
		if mode == ModeTokenize {
			tokenLists = r.wordTok.TokenizeBatch(texts, tokenizer.WordOptions{
				RemoveStopwords: r.cfg.Tokenizer.RemoveStopwords,
				Lowercase:       r.cfg.Tokenizer.Lowercase,
			})
		} else {
			tokenLists = r.regexTok.TokenizeBatch(texts)
		}

		for i, doc := range docs {
			if err := w.Write(tokensLine{ID: doc.ID, Tokens: tokenLists[i]}); err != nil {
				return err
			}
		}

	case ModeConvert, ModePseudoText:
		reps := make([][]float32, len(docs))
		for i, doc := range docs {
			reps[i] = doc.Vector
		}
		opts := converter.Options{
			QuantizationFactor:  r.cfg.Converter.QuantizationFactor,
			ConvertIDToToken:    r.cfg.Converter.ConvertIDToToken,
			AllowNegativeValues: r.cfg.Converter.AllowNegativeValues,
			NegativePrefix:      r.cfg.Converter.NegativePrefix,
		}

		if mode == ModeConvert {
			docsOut, err := r.conv.FrequencyDocs(reps, opts)
			if err != nil {
				return fmt.Errorf("failed to convert representations: %w", err)
			}
			for i, doc := range docs {
				if err := w.Write(repLine{ID: doc.ID, Rep: docsOut[i]}); err != nil {
					return err
				}
			}
		} else {
			texts, err := r.conv.PseudoText(reps, opts)
			if err != nil {
				return fmt.Errorf("failed to convert representations: %w", err)
			}
			for i, doc := range docs {
				if err := w.Write(textLine{ID: doc.ID, Text: texts[i]}); err != nil {
					return err
				}
			}
		}

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	r.logger.Info("processing complete",
		"documents", len(docs),
		"duration", time.Since(start))
	return nil
}
