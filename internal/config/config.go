//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration loading and validation for the
// sparse-emb-util command line tool.
package config

// Config is the root configuration structure.
type Config struct {
	Tokenizer      TokenizerConfig      `yaml:"tokenizer"`
	RegexTokenizer RegexTokenizerConfig `yaml:"regex_tokenizer"`
	Converter      ConverterConfig      `yaml:"converter"`

	// Workers caps the number of OS threads used for batch work.
	// Zero means one worker per available CPU.
	Workers int `yaml:"workers"`
}

// TokenizerConfig configures the word-boundary tokenizer.
type TokenizerConfig struct {
	Engine          string `yaml:"engine"` // "uax29" or "uniseg"
	Lowercase       bool   `yaml:"lowercase"`
	RemoveStopwords bool   `yaml:"remove_stopwords"`
	StopwordsFile   string `yaml:"stopwords_file"` // one word per line; empty = built-in list
}

// RegexTokenizerConfig configures the regex tokenizer.
type RegexTokenizerConfig struct {
	Uncased           bool   `yaml:"uncased"`
	NormalizationForm string `yaml:"normalization_form"` // nfc, nfd, nfkc, nfkd
}

// ConverterConfig configures sparse representation conversion.
type ConverterConfig struct {
	QuantizationFactor  int    `yaml:"quantization_factor"`
	ConvertIDToToken    bool   `yaml:"convert_id_to_token"`
	AllowNegativeValues bool   `yaml:"allow_negative_values"`
	NegativePrefix      string `yaml:"negative_prefix"`
	VocabFile           string `yaml:"vocab_file"` // HuggingFace-style vocab.json
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			Engine:          "uax29",
			Lowercase:       true,
			RemoveStopwords: false,
		},
		RegexTokenizer: RegexTokenizerConfig{
			Uncased:           true,
			NormalizationForm: "nfd",
		},
		Converter: ConverterConfig{
			QuantizationFactor:  1000,
			ConvertIDToToken:    false,
			AllowNegativeValues: false,
			NegativePrefix:      "neg_",
		},
		Workers: 0,
	}
}
