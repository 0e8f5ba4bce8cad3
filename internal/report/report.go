package report

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/olekukonko/tablewriter"
)

// ScoreRecord is one row of the reporting contract:
// {Country ISO3, Year, wordscore real-or-missing}.
type ScoreRecord struct {
	Country   string          `db:"country" json:"country"`
	Session   int             `db:"session" json:"session"`
	Year      int             `db:"year" json:"year"`
	Role      int             `db:"role" json:"role"`
	Wordscore sql.NullFloat64 `db:"wordscore" json:"wordscore"`
}

type Reporter struct {
	db *sqlx.DB
}

func NewReporter(dbURL string) (*Reporter, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &Reporter{db: db}, nil
}

const selectScores = `SELECT country, session, year, role, wordscore
						FROM scores
						WHERE year BETWEEN $1 AND $2
						ORDER BY year, country`

const selectScoresByCountry = `SELECT country, session, year, role, wordscore
								FROM scores
								WHERE country = $1
								ORDER BY year`

func (r *Reporter) FetchScores(ctx context.Context, fromYear, toYear int) ([]ScoreRecord, error) {
	var records []ScoreRecord
	if err := r.db.SelectContext(ctx, &records, selectScores, fromYear, toYear); err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}
	return records, nil
}

func (r *Reporter) FetchCountry(ctx context.Context, country string) ([]ScoreRecord, error) {
	var records []ScoreRecord
	if err := r.db.SelectContext(ctx, &records, selectScoresByCountry, country); err != nil {
		return nil, fmt.Errorf("failed to fetch scores for %s: %w", country, err)
	}
	return records, nil
}

// RenderTable writes the score table in the long form consumed by the
// downstream visualizations: one row per (country, year).
func RenderTable(w io.Writer, records []ScoreRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Country", "Session", "Year", "Wordscore"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, rec := range records {
		table.Append([]string{
			rec.Country,
			strconv.Itoa(rec.Session),
			strconv.Itoa(rec.Year),
			FormatScore(rec.Wordscore),
		})
	}
	table.Render()
}

// FormatScore renders a wordscore for display, with "NA" for missing values.
func FormatScore(score sql.NullFloat64) string {
	if !score.Valid {
		return "NA"
	}
	return strconv.FormatFloat(score.Float64, 'f', 6, 64)
}

// WriteCSV exports the long-form table. Missing wordscores become empty
// fields, never zeros.
func WriteCSV(w io.Writer, records []ScoreRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"country", "session", "year", "wordscore"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		score := ""
		if rec.Wordscore.Valid {
			score = strconv.FormatFloat(rec.Wordscore.Float64, 'f', 6, 64)
		}
		row := []string{rec.Country, strconv.Itoa(rec.Session), strconv.Itoa(rec.Year), score}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportCSV writes the table to a file path, creating or truncating it.
func ExportCSV(path string, records []ScoreRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSV(f, records)
}

func (r *Reporter) Close() error {
	return r.db.Close()
}
