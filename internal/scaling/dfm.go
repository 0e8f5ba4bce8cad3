package scaling

import (
	"math"
	"sort"
)

// FeatureMatrix is a sparse document-by-term matrix. The vocabulary is the
// union of tokens across the input set, sorted so that term indices (and with
// them every downstream score) are deterministic for a given subset. Once
// built for a subset the vocabulary is fixed; matrices are never shared
// between years.
type FeatureMatrix struct {
	Vocabulary []string
	Rows       []map[int]float64
	DocFreq    []int

	termIndex map[string]int
	weighted  bool
}

// NewFeatureMatrix builds the raw term-frequency matrix from normalized token
// streams, one stream per document.
func NewFeatureMatrix(docs [][]string) *FeatureMatrix {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]bool)
		for _, token := range tokens {
			if !seen[token] {
				df[token]++
				seen[token] = true
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	m := &FeatureMatrix{
		Vocabulary: vocab,
		Rows:       make([]map[int]float64, len(docs)),
		DocFreq:    make([]int, len(vocab)),
		termIndex:  make(map[string]int, len(vocab)),
	}
	for i, term := range vocab {
		m.termIndex[term] = i
		m.DocFreq[i] = df[term]
	}

	for docIdx, tokens := range docs {
		row := make(map[int]float64)
		for _, token := range tokens {
			row[m.termIndex[token]]++
		}
		m.Rows[docIdx] = row
	}
	return m
}

// IDF returns log(N/df) for a term index. It is monotonically non-increasing
// in document frequency and zero for a term present in every document.
func (m *FeatureMatrix) IDF(termIdx int) float64 {
	df := m.DocFreq[termIdx]
	if df <= 0 {
		return 0
	}
	return math.Log(float64(m.NumDocs()) / float64(df))
}

// ApplyTFIDF reweights every cell in place: weight(t,d) = tf(t,d) * log(N/df(t)).
// Calling it twice is a no-op.
func (m *FeatureMatrix) ApplyTFIDF() {
	if m.weighted {
		return
	}
	for _, row := range m.Rows {
		for termIdx, tf := range row {
			row[termIdx] = tf * m.IDF(termIdx)
		}
	}
	m.weighted = true
}

func (m *FeatureMatrix) NumDocs() int {
	return len(m.Rows)
}

func (m *FeatureMatrix) NumTerms() int {
	return len(m.Vocabulary)
}

// TermIndex resolves a term to its column, reporting whether it is in the
// vocabulary.
func (m *FeatureMatrix) TermIndex(term string) (int, bool) {
	idx, ok := m.termIndex[term]
	return idx, ok
}
