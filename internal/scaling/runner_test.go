package scaling

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/speechscaling/scaling_engine/config"
	"github.com/speechscaling/scaling_engine/internal/corpus"
	"github.com/speechscaling/scaling_engine/models"
	"github.com/stretchr/testify/require"
)

func testScalingConfig(start, end int) *config.ScalingConfig {
	return &config.ScalingConfig{
		StartYear:  start,
		EndYear:    end,
		AnchorLow:  "RUS",
		AnchorHigh: "USA",
		Workers:    2,
	}
}

func doc(country string, session, year int, text string) models.Document {
	return models.Document{
		CountryCode: country,
		Session:     session,
		Year:        year,
		RawText:     text,
	}
}

type memoryWriter struct {
	mu   sync.Mutex
	rows []ScoreRow
}

func (w *memoryWriter) UpsertScores(_ context.Context, rows []ScoreRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, rows...)
	return nil
}

func TestRunner_ScoresEveryDocumentOncePerYear(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "Sovereignty and security demand respect for borders."),
		doc("USA", 55, 2000, "Freedom and cooperation between open societies."),
		doc("FRA", 55, 2000, "Cooperation and security serve every nation."),
		doc("RUS", 56, 2001, "Security remains paramount for sovereign states."),
		doc("USA", 56, 2001, "Cooperation sustains freedom across nations."),
	}}

	writer := &memoryWriter{}
	runner := NewRunner(c, testScalingConfig(2000, 2001), writer, nil)

	table, err := runner.Run(context.Background())
	req.NoError(err)
	req.Len(table, 5)

	// Exactly one row per (document, year); no duplicates.
	seen := make(map[string]bool)
	for _, row := range table {
		key := fmt.Sprintf("%s_%d", row.Country, row.Year)
		req.False(seen[key], "duplicate row %s", key)
		seen[key] = true
	}

	// Sorted by (year, country).
	req.Equal("FRA", table[0].Country)
	req.Equal(2000, table[0].Year)
	req.Equal(2001, table[len(table)-1].Year)

	// Writer received every row the table reports.
	req.Len(writer.rows, 5)
}

func TestRunner_AnchorsScoreAtTheirLabels(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "Sovereignty sovereignty sovereignty."),
		doc("USA", 55, 2000, "Freedom freedom freedom."),
		doc("FRA", 55, 2000, "Sovereignty freedom."),
	}}

	runner := NewRunner(c, testScalingConfig(2000, 2000), nil, nil)
	table, err := runner.Run(context.Background())
	req.NoError(err)
	req.Len(table, 3)

	byCountry := make(map[string]float64)
	for _, row := range table {
		byCountry[row.Country] = row.Wordscore
	}
	req.InDelta(-1.0, byCountry["RUS"], 1e-12)
	req.InDelta(1.0, byCountry["USA"], 1e-12)
	req.InDelta(0.0, byCountry["FRA"], 1e-12)
}

func TestRunner_SkipsYearsMissingAnchors(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "Sovereignty and security."),
		doc("USA", 55, 2000, "Freedom and cooperation."),
		// 2001 lacks the USA anchor entirely.
		doc("RUS", 56, 2001, "Sovereignty above all."),
		doc("FRA", 56, 2001, "Cooperation among nations."),
		doc("RUS", 57, 2002, "Security and sovereignty."),
		doc("USA", 57, 2002, "Freedom and openness."),
	}}

	runner := NewRunner(c, testScalingConfig(2000, 2002), nil, nil)
	table, err := runner.Run(context.Background())
	req.NoError(err)

	years := make(map[int]int)
	for _, row := range table {
		years[row.Year]++
	}
	// 2001 produced no rows; the run continued into 2002.
	req.Equal(2, years[2000])
	req.Zero(years[2001])
	req.Equal(2, years[2002])
}

func TestRunner_EmptyDocumentReportsMissingScore(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "Sovereignty and security."),
		doc("USA", 55, 2000, "Freedom and cooperation."),
		doc("AGO", 55, 2000, "12345 --- !!!"),
	}}

	runner := NewRunner(c, testScalingConfig(2000, 2000), nil, nil)
	table, err := runner.Run(context.Background())
	req.NoError(err)
	req.Len(table, 3)

	for _, row := range table {
		if row.Country == "AGO" {
			req.True(math.IsNaN(row.Wordscore))
		} else {
			req.False(math.IsNaN(row.Wordscore))
		}
	}
}

func TestRunner_DeterministicAcrossRuns(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "Sovereignty security borders territory."),
		doc("USA", 55, 2000, "Freedom cooperation markets openness."),
		doc("FRA", 55, 2000, "Cooperation security markets borders."),
		doc("CHN", 55, 2000, "Territory sovereignty markets cooperation."),
	}}

	first, err := NewRunner(c, testScalingConfig(2000, 2000), nil, nil).Run(context.Background())
	req.NoError(err)

	for i := 0; i < 5; i++ {
		again, err := NewRunner(c, testScalingConfig(2000, 2000), nil, nil).Run(context.Background())
		req.NoError(err)
		req.Equal(first, again)
	}
}

func TestRunner_InvalidYearRange(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "a"),
	}}

	_, err := NewRunner(c, testScalingConfig(2002, 2000), nil, nil).Run(context.Background())
	req.Error(err)
}

func TestRunner_CancelledContext(t *testing.T) {
	req := require.New(t)

	c := &corpus.Corpus{Documents: []models.Document{
		doc("RUS", 55, 2000, "Sovereignty."),
		doc("USA", 55, 2000, "Freedom."),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(c, testScalingConfig(1971, 2017), nil, nil).Run(ctx)
	req.Error(err)
}
