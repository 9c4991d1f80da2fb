//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/ma787639046/sparse-emb-util/internal/config"
	"github.com/ma787639046/sparse-emb-util/internal/pipeline"
)

// Version information - set via ldflags during build
var (
	version   = "0.2.0"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help message")
		modeFlag    = flag.String("mode", "tokenize", "Processing mode: tokenize, regex-tokenize, convert, pseudo-text")
		configPath  = flag.String("config", "", "Path to configuration file")
		inputPath   = flag.String("input", "", "Input JSONL file (default: stdin)")
		outputPath  = flag.String("output", "", "Output JSONL file (default: stdout)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `sparse-emb-util - Tokenizers and sparse representation conversion for lexical search

Usage:
    sparse-emb-util [options]

Options:
    -mode string
        Processing mode (default "tokenize"):
        tokenize        Cut document text at Unicode word boundaries
        regex-tokenize  Cut document text with the regex tokenizer
        convert         Quantize document vectors to frequency mappings
        pseudo-text     Quantize document vectors to pseudo text

    -config string
        Path to configuration file. If not specified, searches:
        1. /etc/sparse-emb-util/sparse-emb-util.yaml
        2. sparse-emb-util.yaml (in binary directory)
        Built-in defaults apply if no file is found.

    -input string
        Input JSONL file, one document per line. Defaults to stdin.

    -output string
        Output JSONL file. Defaults to stdout.

    -version
        Show version information and exit

    -help
        Show this help message and exit
`)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("sparse-emb-util\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Build Time: %s\n", buildTime)
		fmt.Printf("  Git Commit: %s\n", gitCommit)
		os.Exit(0)
	}

	// Set up logger. Data goes to stdout, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(*modeFlag, *configPath, *inputPath, *outputPath, logger); err != nil {
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

func run(modeStr, configPath, inputPath, outputPath string, logger *slog.Logger) error {
	mode, err := pipeline.ParseMode(modeStr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Workers > 0 {
		runtime.GOMAXPROCS(cfg.Workers)
	}

	runner, err := pipeline.NewRunner(cfg, logger)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("failed to close output", "error", err)
			}
		}()
		out = f
	}

	return runner.Run(mode, in, out)
}
