//-------------------------------------------------------------------------
//
// Sparse Embedding Utilities
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package annotate judges whether retrieved documents contain answer
// strings by token-subsequence matching over a pre-tokenized corpus,
// producing query relevance labels (qrels).
package annotate

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ma787639046/sparse-emb-util/internal/tokenizer"
)

// IsSubsequence reports whether needle occurs as a contiguous token
// run inside haystack. An empty needle always matches.
func IsSubsequence(needle, haystack []string) bool {
	if len(needle) == 0 {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}

outer:
	for i := 0; i <= len(haystack)-len(needle); i++ {
		for j, token := range needle {
			if haystack[i+j] != token {
				continue outer
			}
		}
		return true
	}
	return false
}

// IsSubsequenceAny reports whether at least one needle occurs as a
// contiguous token run inside haystack.
func IsSubsequenceAny(needles [][]string, haystack []string) bool {
	for _, needle := range needles {
		if IsSubsequence(needle, haystack) {
			return true
		}
	}
	return false
}

// Annotator matches answer strings against a pre-tokenized corpus.
// The corpus and tokenizer are bound at construction and treated as
// immutable.
type Annotator struct {
	corpus map[string][]string
	tok    *tokenizer.RegexTokenizer
}

// New creates an annotator over a docid-to-tokens corpus. The corpus
// must be tokenized with the same tokenizer configuration passed here,
// or matching silently degrades.
func New(corpus map[string][]string, tok *tokenizer.RegexTokenizer) *Annotator {
	return &Annotator{corpus: corpus, tok: tok}
}

// Annotate labels every (qid, docid) pair: 1 when at least one of the
// query's answers occurs as a token subsequence of the document, else
// 0. Queries run in parallel; a missing answer list or a docid absent
// from the corpus fails the whole call.
func (a *Annotator) Annotate(
	qidToDocIDs map[string][]string,
	qidToAnswers map[string][]string,
) (map[string]map[string]int, error) {
	qids := make([]string, 0, len(qidToDocIDs))
	for qid := range qidToDocIDs {
		qids = append(qids, qid)
	}

	results := make([]map[string]int, len(qids))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, qid := range qids {
		g.Go(func() error {
			answerTexts, ok := qidToAnswers[qid]
			if !ok {
				return fmt.Errorf("missing answers for qid %q", qid)
			}

			answers := make([][]string, len(answerTexts))
			for j, text := range answerTexts {
				answers[j] = a.tok.Tokenize(text)
			}

			rel := make(map[string]int, len(qidToDocIDs[qid]))
			for _, docID := range qidToDocIDs[qid] {
				doc, ok := a.corpus[docID]
				if !ok {
					return fmt.Errorf("missing tokenized document %q for qid %q", docID, qid)
				}
				if IsSubsequenceAny(answers, doc) {
					rel[docID] = 1
				} else {
					rel[docID] = 0
				}
			}
			results[i] = rel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	qrels := make(map[string]map[string]int, len(qids))
	for i, qid := range qids {
		qrels[qid] = results[i]
	}
	return qrels, nil
}
