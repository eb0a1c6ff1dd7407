package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer is a TF-IDF embedding over a corpus of combined movie feature
// strings: unigrams and bigrams, English stop-word removal, vocabulary capped
// at the top-N terms by document frequency. Once fitted the vocabulary and
// vector dimensionality are fixed for the lifetime of the instance.
type Vectorizer struct {
	vocabSize int
	terms     []string       // column -> term
	columns   map[string]int // term -> column
	idf       []float64
	fitted    bool
}

// NewVectorizer creates an unfitted vectorizer with the given vocabulary cap.
func NewVectorizer(vocabSize int) *Vectorizer {
	return &Vectorizer{vocabSize: vocabSize}
}

// Fitted reports whether Fit has completed.
func (v *Vectorizer) Fitted() bool { return v.fitted }

// Dimension returns the fitted vocabulary size (0 before Fit).
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// Fit learns the vocabulary and IDF weights from docs and returns one
// L2-normalized TF-IDF row per document, in input order. Rows of normalized
// vectors make cosine similarity a plain dot product.
func (v *Vectorizer) Fit(docs []string) []SparseVector {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = tokenize(doc)
		seen := make(map[string]struct{}, len(tokenized[i]))
		for _, term := range tokenized[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	v.buildVocabulary(df)

	// Smoothed IDF: log((1+N)/(1+df)) + 1, so terms present in every
	// document still contribute.
	n := float64(len(docs))
	v.idf = make([]float64, len(v.terms))
	for col, term := range v.terms {
		v.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]SparseVector, len(docs))
	for i, tokens := range tokenized {
		rows[i] = v.transform(tokens)
	}
	v.fitted = true
	return rows
}

// buildVocabulary keeps the top vocabSize terms by document frequency.
// Ties break lexicographically so fitting the same corpus twice always
// produces the same column order.
func (v *Vectorizer) buildVocabulary(df map[string]int) {
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.vocabSize {
		terms = terms[:v.vocabSize]
	}
	// Column order is lexicographic over the selected vocabulary, matching
	// the convention of alphabetically sorted feature names.
	sort.Strings(terms)

	v.terms = terms
	v.columns = make(map[string]int, len(terms))
	for col, term := range terms {
		v.columns[term] = col
	}
}

// transform converts one token list into an L2-normalized TF-IDF vector over
// the fitted vocabulary. Out-of-vocabulary tokens are dropped.
func (v *Vectorizer) transform(tokens []string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range tokens {
		if col, ok := v.columns[term]; ok {
			counts[col]++
		}
	}
	vec := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		vec.Indices = append(vec.Indices, col)
	}
	sort.Ints(vec.Indices)
	for _, col := range vec.Indices {
		vec.Values = append(vec.Values, counts[col]*v.idf[col])
	}
	if norm := vec.Norm(); norm > 0 {
		vec.Scale(1 / norm)
	}
	return vec
}

// tokenize lowercases, splits on non-alphanumeric runes, removes stop words
// and single characters, and emits unigrams followed by bigrams.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < 2 || isStopWord(w) {
			continue
		}
		words = append(words, w)
	}
	tokens := make([]string, 0, len(words)*2)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}
