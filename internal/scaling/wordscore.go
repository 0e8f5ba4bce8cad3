package scaling

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrMissingAnchor = errors.New("anchor document missing from subset")

// ReferenceLabels assigns the two anchor scores to document rows of a
// FeatureMatrix. All other rows are unlabeled.
type ReferenceLabels map[int]float64

// WordscoreModel holds per-term scores estimated from the two anchor
// documents. Terms absent from both anchors have no entry and contribute
// nothing to predictions.
type WordscoreModel struct {
	termScores map[int]float64
}

// FitWordscore estimates a score for every vocabulary term as the
// label-weighted average of the term's weight across the anchor rows:
//
//	s(t) = sum_r label(r)*w(t,r) / sum_r w(t,r)
//
// summed over the reference rows only. Exactly two labels are required.
func FitWordscore(m *FeatureMatrix, labels ReferenceLabels) (*WordscoreModel, error) {
	if len(labels) != 2 {
		return nil, fmt.Errorf("wordscore requires exactly two reference labels, got %d", len(labels))
	}
	for rowIdx := range labels {
		if rowIdx < 0 || rowIdx >= m.NumDocs() {
			return nil, fmt.Errorf("reference label row %d out of range: %w", rowIdx, ErrMissingAnchor)
		}
	}

	numerator := make(map[int]float64)
	denominator := make(map[int]float64)
	for rowIdx, label := range labels {
		for termIdx, weight := range m.Rows[rowIdx] {
			numerator[termIdx] += label * weight
			denominator[termIdx] += weight
		}
	}

	scores := make(map[int]float64, len(numerator))
	for termIdx, den := range denominator {
		if den == 0 {
			continue
		}
		scores[termIdx] = numerator[termIdx] / den
	}
	return &WordscoreModel{termScores: scores}, nil
}

// TermScore reports the fitted score of a term, and whether the term appeared
// in either anchor.
func (w *WordscoreModel) TermScore(termIdx int) (float64, bool) {
	s, ok := w.termScores[termIdx]
	return s, ok
}

// Predict scores one document row as the weight-averaged score of its terms:
//
//	score(d) = sum_t w(t,d)*s(t) / sum_t w(t,d)
//
// A row with zero total feature weight has no defined position and predicts
// NaN. No rescaling is applied; raw scores are reported as fitted.
//
// Accumulation runs in ascending term order: map iteration order would
// reorder the float additions and break bit-identical reruns.
func (w *WordscoreModel) Predict(row map[int]float64) float64 {
	termIdxs := make([]int, 0, len(row))
	for termIdx := range row {
		termIdxs = append(termIdxs, termIdx)
	}
	sort.Ints(termIdxs)

	var numerator, denominator float64
	for _, termIdx := range termIdxs {
		score, ok := w.termScores[termIdx]
		if !ok {
			continue
		}
		numerator += row[termIdx] * score
		denominator += row[termIdx]
	}
	if denominator == 0 {
		return math.NaN()
	}
	return numerator / denominator
}

// PredictAll scores every row of the matrix, anchors included.
func (w *WordscoreModel) PredictAll(m *FeatureMatrix) []float64 {
	scores := make([]float64, m.NumDocs())
	for i, row := range m.Rows {
		scores[i] = w.Predict(row)
	}
	return scores
}
