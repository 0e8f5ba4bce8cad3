package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/speechscaling/scaling_engine/models"
)

// Corpus is the in-memory document collection the scaling pipeline runs over.
// It is built once and only read afterwards; per-year subsets are views, not
// new collections.
type Corpus struct {
	Documents []models.Document
}

// ParseFilename extracts (country, session, year) from the transcript naming
// convention CCC_SS_YYYY.txt, e.g. "USA_71_2016.txt".
func ParseFilename(name string) (string, int, int, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("filename %q does not match COUNTRY_SESSION_YEAR", name)
	}
	country := strings.ToUpper(strings.TrimSpace(parts[0]))
	if len(country) != 3 {
		return "", 0, 0, fmt.Errorf("filename %q: country code %q is not ISO3", name, parts[0])
	}
	session, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("filename %q: bad session number: %w", name, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("filename %q: bad year: %w", name, err)
	}
	return country, session, year, nil
}

// LoadDirectory reads every .txt transcript under dir. A malformed filename or
// unreadable file fails the whole load; there is no partial recovery on
// ingest. Files are read in sorted order so the corpus is deterministic.
func LoadDirectory(dir string, roles RoleTable) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no transcript files found in %s", dir)
	}

	corpus := &Corpus{Documents: make([]models.Document, 0, len(names))}
	for _, name := range names {
		country, session, year, err := ParseFilename(name)
		if err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read transcript %s: %w", name, err)
		}
		corpus.Documents = append(corpus.Documents, models.Document{
			CountryCode: country,
			Session:     session,
			Year:        year,
			Role:        roles.Lookup(country, year),
			RawText:     string(raw),
		})
	}
	return corpus, nil
}

// ByYear returns the documents delivered in a given year. The returned slice
// shares no state with future mutations; callers must treat it as read-only.
func (c *Corpus) ByYear(year int) []models.Document {
	var subset []models.Document
	for _, doc := range c.Documents {
		if doc.Year == year {
			subset = append(subset, doc)
		}
	}
	return subset
}

// Years lists the distinct years present in the corpus in ascending order.
func (c *Corpus) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, doc := range c.Documents {
		if !seen[doc.Year] {
			seen[doc.Year] = true
			years = append(years, doc.Year)
		}
	}
	sort.Ints(years)
	return years
}

func (c *Corpus) Size() int {
	return len(c.Documents)
}
