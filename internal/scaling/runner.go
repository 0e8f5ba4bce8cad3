package scaling

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"

	"github.com/speechscaling/scaling_engine/config"
	"github.com/speechscaling/scaling_engine/internal/corpus"
	"github.com/speechscaling/scaling_engine/internal/textproc"
	"github.com/speechscaling/scaling_engine/models"
)

// ScoreRow is one entry of the long-form result table: a single document's
// fitted position in a single year. Wordscore is NaN when the document had no
// scorable feature weight.
type ScoreRow struct {
	Country   string
	Session   int
	Year      int
	Role      models.SpeakerRole
	Wordscore float64
}

// ScoreWriter persists the rows of one completed year. Implementations must
// be safe for concurrent use; years complete on independent workers.
type ScoreWriter interface {
	UpsertScores(ctx context.Context, rows []ScoreRow) error
}

// Runner drives the per-year scaling loop. Every year is fitted from scratch
// on its own subset - its own tokenization, vocabulary and IDF weights - so
// scores are comparable within a year but deliberately not across years.
type Runner struct {
	corpus   *corpus.Corpus
	cfg      *config.ScalingConfig
	writer   ScoreWriter
	progress *Progress
	workers  int
}

func NewRunner(c *corpus.Corpus, cfg *config.ScalingConfig, writer ScoreWriter, progress *Progress) *Runner {
	workers := runtime.NumCPU()
	if cfg.Workers > 0 {
		workers = cfg.Workers
	}
	return &Runner{
		corpus:   c,
		cfg:      cfg,
		writer:   writer,
		progress: progress,
		workers:  workers,
	}
}

// Run fits every year in [StartYear, EndYear] and returns the concatenated
// table sorted by (year, country). Years whose subset lacks one or both
// anchors are logged and skipped; any other failure aborts the run.
func (r *Runner) Run(ctx context.Context) ([]ScoreRow, error) {
	startYear, endYear := r.cfg.StartYear, r.cfg.EndYear
	if startYear > endYear {
		return nil, fmt.Errorf("invalid year range %d-%d", startYear, endYear)
	}

	numYears := endYear - startYear + 1
	results := make([][]ScoreRow, numYears)
	errs := make([]error, numYears)

	yearJobs := make(chan int, numYears)

	numWorkers := r.workers
	if numWorkers > numYears {
		numWorkers = numYears
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for year := range yearJobs {
				slot := year - startYear
				if r.progress.IsDone(ctx, year) {
					log.Printf("Year %d already scaled, skipping", year)
					continue
				}
				rows, err := r.scoreYear(ctx, year)
				if err != nil {
					if errors.Is(err, ErrMissingAnchor) {
						log.Printf("Year %d: %v, skipping", year, err)
						continue
					}
					errs[slot] = err
					continue
				}
				if r.writer != nil {
					if err := r.writer.UpsertScores(ctx, rows); err != nil {
						errs[slot] = fmt.Errorf("failed to persist year %d: %w", year, err)
						continue
					}
				}
				r.progress.MarkDone(ctx, year)
				results[slot] = rows
			}
		}()
	}

	for year := startYear; year <= endYear; year++ {
		select {
		case <-ctx.Done():
			close(yearJobs)
			wg.Wait()
			return nil, ctx.Err()
		case yearJobs <- year:
		}
	}
	close(yearJobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var table []ScoreRow
	for _, rows := range results {
		table = append(table, rows...)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Year == table[j].Year {
			return table[i].Country < table[j].Country
		}
		return table[i].Year < table[j].Year
	})
	return table, nil
}

// scoreYear re-tokenizes, re-weights and re-fits on one year's subset alone.
func (r *Runner) scoreYear(ctx context.Context, year int) ([]ScoreRow, error) {
	docs := r.corpus.ByYear(year)
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents for %d: %w", year, ErrMissingAnchor)
	}

	tokenStreams := make([][]string, len(docs))
	for i, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		tokenStreams[i] = textproc.Tokenize(doc.RawText)
	}

	matrix := NewFeatureMatrix(tokenStreams)
	matrix.ApplyTFIDF()

	labels, err := r.anchorLabels(docs, year)
	if err != nil {
		return nil, err
	}

	model, err := FitWordscore(matrix, labels)
	if err != nil {
		return nil, err
	}
	scores := model.PredictAll(matrix)

	rows := make([]ScoreRow, len(docs))
	for i, doc := range docs {
		rows[i] = ScoreRow{
			Country:   doc.CountryCode,
			Session:   doc.Session,
			Year:      year,
			Role:      doc.Role,
			Wordscore: scores[i],
		}
	}
	return rows, nil
}

// anchorLabels locates the two anchor countries inside a year's subset and
// pins them to -1 and +1.
func (r *Runner) anchorLabels(docs []models.Document, year int) (ReferenceLabels, error) {
	lowIdx, highIdx := -1, -1
	for i, doc := range docs {
		switch doc.CountryCode {
		case r.cfg.AnchorLow:
			lowIdx = i
		case r.cfg.AnchorHigh:
			highIdx = i
		}
	}
	if lowIdx == -1 || highIdx == -1 {
		return nil, fmt.Errorf("year %d subset lacks %s or %s: %w",
			year, r.cfg.AnchorLow, r.cfg.AnchorHigh, ErrMissingAnchor)
	}
	return ReferenceLabels{
		lowIdx:  -1.0,
		highIdx: 1.0,
	}, nil
}
