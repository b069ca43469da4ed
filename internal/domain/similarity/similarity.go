// Package similarity scores lexical overlap between two documents using
// raw term-frequency vectors and cosine similarity.
package similarity

import (
	"math"
	"sort"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default scoring configuration constants.
const (
	defaultMinTokenLength = 2
	maxScoreValue         = 100
	scoreScale            = 100 // two decimal places
)

// Option applies a configuration option to the CountScorer.
type Option func(*CountScorer)

// WithMinTokenLength sets the shortest run of word characters that counts
// as a token. Values below 1 are ignored.
func WithMinTokenLength(n int) Option {
	return func(s *CountScorer) {
		if n > 0 {
			s.minTokenLength = n
		}
	}
}

// Scorer computes a match percentage in [0, 100] for two documents.
type Scorer interface {
	Score(a, b string) float64
}

// Comparison is the full outcome of comparing two documents.
type Comparison struct {
	Score          float64  `json:"score"`
	SharedTerms    []string `json:"shared_terms"`
	VocabularySize int      `json:"vocabulary_size"`
}

// CountScorer implements Scorer with a bag-of-words count vectorizer.
// Tokens are lowercased runs of letters, digits and underscores that are
// at least minTokenLength runes long; everything else separates tokens.
// The vocabulary is rebuilt on every call, so the scorer holds no state
// beyond its options and is safe for concurrent use.
type CountScorer struct {
	minTokenLength int
}

// NewCountScorer creates a scorer with configuration options.
func NewCountScorer(opts ...Option) *CountScorer {
	s := &CountScorer{
		minTokenLength: defaultMinTokenLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the cosine similarity of a and b as a percentage rounded
// to two decimals. Empty documents and disjoint vocabularies score 0.
func (s *CountScorer) Score(a, b string) float64 {
	return s.Compare(a, b).Score
}

// Compare scores a against b and reports the terms both documents share.
func (s *CountScorer) Compare(a, b string) Comparison {
	if a == "" || b == "" {
		return Comparison{SharedTerms: []string{}}
	}

	countsA := s.termCounts(a)
	countsB := s.termCounts(b)

	vocabulary := make([]string, 0, len(countsA)+len(countsB))
	for term := range countsA {
		vocabulary = append(vocabulary, term)
	}
	for term := range countsB {
		if _, ok := countsA[term]; !ok {
			vocabulary = append(vocabulary, term)
		}
	}
	// Fixed summation order keeps Score(a, b) == Score(b, a) bit for bit.
	sort.Strings(vocabulary)

	var dot, normA, normB float64
	shared := []string{}
	for _, term := range vocabulary {
		x, y := float64(countsA[term]), float64(countsB[term])
		dot += x * y
		normA += x * x
		normB += y * y
		if x > 0 && y > 0 {
			shared = append(shared, term)
		}
	}

	return Comparison{
		Score:          toPercent(cosine(dot, normA, normB)),
		SharedTerms:    shared,
		VocabularySize: len(vocabulary),
	}
}

// Tokenize splits text into lowercase tokens using the scorer's rules.
func (s *CountScorer) Tokenize(text string) []string {
	lowered := cases.Lower(language.Und).String(text)

	var tokens []string
	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= s.minTokenLength {
			tokens = append(tokens, lowered[start:end])
		}
		start, runes = -1, 0
	}
	for i, r := range lowered {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lowered))
	return tokens
}

func (s *CountScorer) termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range s.Tokenize(text) {
		counts[tok]++
	}
	return counts
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func cosine(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// toPercent scales a similarity to [0, 100] and rounds half away from zero
// to two decimals.
func toPercent(sim float64) float64 {
	score := math.Round(sim*maxScoreValue*scoreScale) / scoreScale
	return math.Max(0, math.Min(maxScoreValue, score))
}
