package search

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern implements the §9 open-question tokenizer decision: split on
// any run of non-letter, non-digit characters, lowercase the result.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopWords is the fixed English+Hindi-transliteration stop-word list the
// BM25 tokenizer drops, documented per §9's open question.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "and": true, "or": true, "by": true, "with": true, "it": true,
	"this": true, "that": true, "what": true, "how": true, "do": true,
	"does": true, "can": true, "i": true, "you": true, "my": true, "me": true,
	"hai": true, "ka": true, "ki": true, "ke": true, "ko": true, "mein": true,
	"se": true, "aur": true, "kya": true, "kaise": true,
}

// Tokenize lowercases and splits text into BM25 terms, dropping stop words.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if !stopWords[t] {
			out = append(out, t)
		}
	}
	return out
}

// BM25Index is a small in-process Okapi BM25 scorer. It is intentionally
// minimal: it backs the fixed, tiny per-domain classifier corpus (§4.1.3)
// and the in-memory LexicalIndex test double; the production document
// corpus's BM25 is delegated to OpenSearch (lexical_opensearch.go).
type BM25Index struct {
	k1, b      float64
	docs       map[string][]string
	docFreq    map[string]int
	totalDocs  int
	totalTerms int
}

// NewBM25Index constructs an empty index with the conventional BM25
// parameters (k1=1.5, b=0.75).
func NewBM25Index() *BM25Index {
	return &BM25Index{
		k1:      1.5,
		b:       0.75,
		docs:    map[string][]string{},
		docFreq: map[string]int{},
	}
}

// Add indexes a document's text under id, overwriting any prior content.
func (idx *BM25Index) Add(id, text string) {
	if _, exists := idx.docs[id]; exists {
		idx.Remove(id)
	}
	tokens := Tokenize(text)
	idx.docs[id] = tokens
	idx.totalDocs++
	idx.totalTerms += len(tokens)
	seen := map[string]bool{}
	for _, t := range tokens {
		if !seen[t] {
			idx.docFreq[t]++
			seen[t] = true
		}
	}
}

// Remove deletes a document from the index.
func (idx *BM25Index) Remove(id string) {
	tokens, ok := idx.docs[id]
	if !ok {
		return
	}
	idx.totalDocs--
	idx.totalTerms -= len(tokens)
	seen := map[string]bool{}
	for _, t := range tokens {
		if !seen[t] {
			idx.docFreq[t]--
			seen[t] = true
		}
	}
	delete(idx.docs, id)
}

// Score returns the raw BM25 score for every document against query.
func (idx *BM25Index) Score(query string) map[string]float64 {
	scores := make(map[string]float64, len(idx.docs))
	if idx.totalDocs == 0 {
		return scores
	}
	queryTerms := Tokenize(query)
	avgLen := float64(idx.totalTerms) / float64(idx.totalDocs)

	for id, tokens := range idx.docs {
		termFreq := map[string]int{}
		for _, t := range tokens {
			termFreq[t]++
		}
		docLen := float64(len(tokens))
		var score float64
		for _, qt := range queryTerms {
			df := idx.docFreq[qt]
			if df == 0 {
				continue
			}
			idf := math.Log(1 + (float64(idx.totalDocs)-float64(df)+0.5)/(float64(df)+0.5))
			tf := float64(termFreq[qt])
			denom := tf + idx.k1*(1-idx.b+idx.b*docLen/avgLen)
			if denom == 0 {
				continue
			}
			score += idf * (tf * (idx.k1 + 1)) / denom
		}
		scores[id] = score
	}
	return scores
}

// Normalize rescales a raw score map into [0,1] via min-max, per §4.8 step 4.
// A degenerate (single-valued or empty) map normalizes to all 1.0 entries.
func Normalize(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if max == min {
		for id := range scores {
			out[id] = 1.0
		}
		return out
	}
	for id, s := range scores {
		out[id] = (s - min) / (max - min)
	}
	return out
}
