package scaling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFeatureMatrix_CountsAndVocabulary(t *testing.T) {
	req := require.New(t)

	m := NewFeatureMatrix([][]string{
		{"peac", "peac", "war"},
		{"war"},
		{"sovereignti"},
	})

	req.Equal(3, m.NumDocs())
	req.Equal(3, m.NumTerms())
	// Vocabulary is sorted for deterministic term indices.
	req.Equal([]string{"peac", "sovereignti", "war"}, m.Vocabulary)

	peacIdx, ok := m.TermIndex("peac")
	req.True(ok)
	warIdx, ok := m.TermIndex("war")
	req.True(ok)

	req.Equal(2.0, m.Rows[0][peacIdx])
	req.Equal(1.0, m.Rows[0][warIdx])
	req.Equal(1.0, m.Rows[1][warIdx])

	req.Equal(1, m.DocFreq[peacIdx])
	req.Equal(2, m.DocFreq[warIdx])

	_, ok = m.TermIndex("absent")
	req.False(ok)
}

func TestIDF_MonotonicallyNonIncreasingInDocFreq(t *testing.T) {
	req := require.New(t)

	// Four docs; "rare" in one, "mid" in two, "common" in all four.
	m := NewFeatureMatrix([][]string{
		{"rare", "mid", "common"},
		{"mid", "common"},
		{"common"},
		{"common"},
	})

	rareIdx, _ := m.TermIndex("rare")
	midIdx, _ := m.TermIndex("mid")
	commonIdx, _ := m.TermIndex("common")

	req.Greater(m.IDF(rareIdx), m.IDF(midIdx))
	req.Greater(m.IDF(midIdx), m.IDF(commonIdx))
	// A term in every document carries no information.
	req.Equal(0.0, m.IDF(commonIdx))
}

func TestApplyTFIDF(t *testing.T) {
	req := require.New(t)

	m := NewFeatureMatrix([][]string{
		{"peac", "peac", "war"},
		{"war"},
	})

	peacIdx, _ := m.TermIndex("peac")
	warIdx, _ := m.TermIndex("war")

	m.ApplyTFIDF()

	req.InDelta(2.0*math.Log(2.0), m.Rows[0][peacIdx], 1e-12)
	// "war" appears in both of the two documents: idf = log(2/2) = 0.
	req.Equal(0.0, m.Rows[0][warIdx])

	// Re-applying must not double-weight.
	weighted := m.Rows[0][peacIdx]
	m.ApplyTFIDF()
	req.Equal(weighted, m.Rows[0][peacIdx])
}

func TestNewFeatureMatrix_EmptyDocuments(t *testing.T) {
	req := require.New(t)

	m := NewFeatureMatrix([][]string{
		{},
		{"peac"},
	})

	req.Equal(2, m.NumDocs())
	req.Equal(1, m.NumTerms())
	req.Empty(m.Rows[0])
}
