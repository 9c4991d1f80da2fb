//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// validEngines are the supported word-boundary engines.
var validEngines = map[string]bool{
	"uax29":  true,
	"uniseg": true,
}

// validNormalizationForms are the supported Unicode normalization
// forms for the regex tokenizer.
var validNormalizationForms = map[string]bool{
	"nfc":  true,
	"nfd":  true,
	"nfkc": true,
	"nfkd": true,
}

// Validate checks the configuration for errors and returns all
// validation errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateTokenizer()...)
	errs = append(errs, c.validateRegexTokenizer()...)
	errs = append(errs, c.validateConverter()...)

	if c.Workers < 0 {
		errs = append(errs, ValidationError{
			Field:   "workers",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateTokenizer validates word tokenizer configuration.
func (c *Config) validateTokenizer() ValidationErrors {
	var errs ValidationErrors

	if !validEngines[c.Tokenizer.Engine] {
		errs = append(errs, ValidationError{
			Field:   "tokenizer.engine",
			Message: fmt.Sprintf("unknown engine %q; must be uax29 or uniseg", c.Tokenizer.Engine),
		})
	}

	return errs
}

// validateRegexTokenizer validates regex tokenizer configuration.
func (c *Config) validateRegexTokenizer() ValidationErrors {
	var errs ValidationErrors

	form := strings.ToLower(c.RegexTokenizer.NormalizationForm)
	if !validNormalizationForms[form] {
		errs = append(errs, ValidationError{
			Field:   "regex_tokenizer.normalization_form",
			Message: fmt.Sprintf("unknown form %q; must be one of nfc, nfd, nfkc, nfkd", c.RegexTokenizer.NormalizationForm),
		})
	}

	return errs
}

// validateConverter validates converter configuration.
func (c *Config) validateConverter() ValidationErrors {
	var errs ValidationErrors

	if c.Converter.QuantizationFactor < 1 {
		errs = append(errs, ValidationError{
			Field:   "converter.quantization_factor",
			Message: "must be a positive integer",
		})
	}

	if strings.ContainsFunc(c.Converter.NegativePrefix, unicode.IsSpace) {
		errs = append(errs, ValidationError{
			Field:   "converter.negative_prefix",
			Message: "must not contain whitespace",
		})
	}

	if c.Converter.ConvertIDToToken && c.Converter.VocabFile == "" {
		errs = append(errs, ValidationError{
			Field:   "converter.vocab_file",
			Message: "required when convert_id_to_token is enabled",
		})
	}

	return errs
}
