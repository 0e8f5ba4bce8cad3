package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speechscaling/scaling_engine/models"
	"github.com/xuri/excelize/v2"
)

// RoleTable maps "COUNTRY_YEAR" to the speaker role recorded in the session
// metadata workbook.
type RoleTable map[string]models.SpeakerRole

// LoadRoleTable reads the speaker spreadsheet. The header row is scanned for
// the country, year and post columns; extra columns are ignored.
func LoadRoleTable(path string) (RoleTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roles file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roles file %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read roles sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roles file %s is empty", path)
	}

	countryIDX, yearIDX, postIDX := -1, -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "country", "iso", "iso3", "country code":
			countryIDX = i
		case "year":
			yearIDX = i
		case "post", "role", "position":
			postIDX = i
		}
	}
	if countryIDX == -1 || yearIDX == -1 || postIDX == -1 {
		return nil, fmt.Errorf("failed to find country/year/post columns in roles file")
	}

	table := make(RoleTable)
	for _, row := range rows[1:] {
		if len(row) <= countryIDX || len(row) <= yearIDX || len(row) <= postIDX {
			continue
		}
		country := strings.ToUpper(strings.TrimSpace(row[countryIDX]))
		year, err := strconv.Atoi(strings.TrimSpace(row[yearIDX]))
		if err != nil || country == "" {
			continue
		}
		table[roleKey(country, year)] = models.ParseSpeakerRole(row[postIDX])
	}
	return table, nil
}

// Lookup returns RoleUnknown for countries or years the spreadsheet does not
// cover. A nil table is valid and answers RoleUnknown for everything.
func (t RoleTable) Lookup(country string, year int) models.SpeakerRole {
	if t == nil {
		return models.RoleUnknown
	}
	return t[roleKey(country, year)]
}

func roleKey(country string, year int) string {
	return fmt.Sprintf("%s_%d", country, year)
}
