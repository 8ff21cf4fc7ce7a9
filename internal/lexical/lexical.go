// Package lexical tokenizes the free-text reasons of the anonymized tidy
// table and builds a category-by-word frequency cross-tabulation of the
// most frequent content words.
package lexical

import (
	"errors"
	"sort"
	"unicode/utf8"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// ErrNoText is returned when the table yields no analyzable words at all,
// e.g. when every reason field is empty.
var ErrNoText = errors.New("no analyzable text in reason column")

// Word is one morpheme as reported by a tokenizer.
type Word struct {
	Surface string
	Base    string // dictionary base form; falls back to the surface
	POS     string // coarse part-of-speech tag
}

// Tokenizer turns free text into tagged words. The morphological engine
// is a black box behind this interface so tests can substitute one.
type Tokenizer interface {
	Tokenize(text string) []Word
}

// Content-word part-of-speech tags retained by the analyzer.
var keepPOS = map[string]bool{
	"名詞":  true, // nouns
	"形容詞": true, // adjectives
}

// defaultStopWords are filler words that dominate frequency counts
// without carrying meaning.
var defaultStopWords = []string{
	"こと", "よう", "そう", "もの", "それ", "これ", "ん", "の", "ため", "感じ",
}

// Analyzer extracts and aggregates content words.
type Analyzer struct {
	tok  Tokenizer
	stop map[string]bool
}

// NewAnalyzer builds an analyzer with the default stop-word list.
func NewAnalyzer(tok Tokenizer) *Analyzer {
	stop := make(map[string]bool, len(defaultStopWords))
	for _, w := range defaultStopWords {
		stop[w] = true
	}
	return &Analyzer{tok: tok, stop: stop}
}

// ExtractWords tokenizes text and keeps the base forms of nouns and
// adjectives, dropping stop words and single-character tokens.
func (a *Analyzer) ExtractWords(text string) []string {
	if text == "" {
		return nil
	}
	var words []string
	for _, w := range a.tok.Tokenize(text) {
		if !keepPOS[w.POS] {
			continue
		}
		base := w.Base
		if base == "" {
			base = w.Surface
		}
		if a.stop[base] || utf8.RuneCountInString(base) <= 1 {
			continue
		}
		words = append(words, base)
	}
	return words
}

// CrossTab is a category-by-word frequency table over the globally most
// frequent words. Absent combinations are zero.
type CrossTab struct {
	Categories []string
	Words      []string
	Counts     [][]int // Counts[i][j]: word j in category i
}

// Analyze aggregates the Q2 reason texts per category and cross-tabulates
// the topN most frequent words. Returns ErrNoText when nothing survives
// the filters.
func (a *Analyzer) Analyze(t *types.Table, topN int) (*CrossTab, error) {
	categoryWords := make(map[string][]string)
	globalCounts := make(map[string]int)
	var categories []string

	for _, r := range t.Rows {
		c := r.Stimulus.Category
		if _, seen := categoryWords[c]; !seen {
			categories = append(categories, c)
			categoryWords[c] = nil
		}
		words := a.ExtractWords(r.Qual.Q2Reason)
		categoryWords[c] = append(categoryWords[c], words...)
		for _, w := range words {
			globalCounts[w]++
		}
	}
	if len(globalCounts) == 0 {
		return nil, ErrNoText
	}

	top := topWords(globalCounts, topN)

	ct := &CrossTab{Categories: categories, Words: top}
	wordIdx := make(map[string]int, len(top))
	for j, w := range top {
		wordIdx[w] = j
	}
	for _, c := range categories {
		row := make([]int, len(top))
		for _, w := range categoryWords[c] {
			if j, ok := wordIdx[w]; ok {
				row[j]++
			}
		}
		ct.Counts = append(ct.Counts, row)
	}
	return ct, nil
}

// topWords returns the n most frequent words, ties broken alphabetically
// so output is deterministic.
func topWords(counts map[string]int, n int) []string {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}
