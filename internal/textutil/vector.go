package textutil

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const minTokenRunes = 3

var folder = cases.Fold()

// Vector is a term-frequency vector used for similarity comparison.
type Vector struct {
	terms map[string]float64
	norm  float64
}

// NewVector builds a vector from text. It returns nil when text has no
// usable tokens.
func NewVector(text string) *Vector {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return newVector(counts)
}

func newVector(terms map[string]float64) *Vector {
	var norm float64
	for _, w := range terms {
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	return &Vector{terms: terms, norm: math.Sqrt(norm)}
}

// Tokenize splits text into case-folded letter/digit runs.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(folder.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, field := range fields {
		if utf8.RuneCountInString(field) < minTokenRunes {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Len returns the number of distinct terms.
func (v *Vector) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Weighted returns a copy of v with each term multiplied by its IDF weight.
// Terms missing from idf keep their weight.
func (v *Vector) Weighted(idf map[string]float64) *Vector {
	if v == nil || len(idf) == 0 {
		return v
	}
	terms := make(map[string]float64, len(v.terms))
	for term, count := range v.terms {
		w := count
		if weight, ok := idf[term]; ok {
			w *= weight
		}
		if w != 0 {
			terms[term] = w
		}
	}
	return newVector(terms)
}

// Similarity returns the cosine similarity of a and b in [0, 1].
func Similarity(a, b *Vector) float64 {
	if a == nil || b == nil {
		return 0
	}
	small, large := a, b
	if len(small.terms) > len(large.terms) {
		small, large = large, small
	}
	var dot float64
	for term, w := range small.terms {
		dot += w * large.terms[term]
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Corpus accumulates document frequencies for IDF weighting.
type Corpus struct {
	docs int
	freq map[string]int
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{freq: make(map[string]int)}
}

// Add counts each distinct term of v once.
func (c *Corpus) Add(v *Vector) {
	if c == nil || v == nil {
		return
	}
	c.docs++
	for term := range v.terms {
		c.freq[term]++
	}
}

// IDF returns smoothed inverse document frequencies, log((N+1)/(1+df)).
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docs == 0 {
		return nil
	}
	n := float64(c.docs)
	idf := make(map[string]float64, len(c.freq))
	for term, df := range c.freq {
		idf[term] = math.Log((n + 1) / (1 + float64(df)))
	}
	return idf
}
