//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultStopWords contains common English stop words.
var DefaultStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "he": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true,
	"which": true, "why": true, "how": true, "all": true, "each": true,
	"every": true, "both": true, "few": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "no": true, "not": true,
	"only": true, "same": true, "so": true, "than": true, "too": true,
	"very": true, "can": true, "just": true, "should": true, "now": true,
	"i": true, "you": true, "we": true, "me": true, "my": true,
	"your": true, "our": true, "their": true, "him": true, "her": true,
}

// LoadStopWords reads a stop-word set from a file with one word per
// line. Blank lines and lines starting with '#' are skipped; words are
// lowercased so membership matches post-lowercasing tokens.
func LoadStopWords(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stop-word file: %w", err)
	}
	defer f.Close()

	stopWords := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		stopWords[strings.ToLower(word)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stop-word file: %w", err)
	}
	return stopWords, nil
}
