package corpus

import (
	"path/filepath"
	"testing"

	"github.com/speechscaling/scaling_engine/models"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeRolesWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "speakers.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadRoleTable(t *testing.T) {
	req := require.New(t)

	path := writeRolesWorkbook(t, [][]interface{}{
		{"Country", "Session", "Year", "Name of Person Speaking", "Post"},
		{"USA", 71, 2016, "Barack Obama", "President"},
		{"RUS", 71, 2016, "Sergey Lavrov", "Minister for Foreign Affairs"},
		{"FRA", 71, 2016, "", "Permanent Representative to the UN"},
		{"", 71, 2016, "", "President"},
	})

	table, err := LoadRoleTable(path)
	req.NoError(err)
	req.Len(table, 3)

	req.Equal(models.RoleHeadOfState, table.Lookup("USA", 2016))
	req.Equal(models.RoleMinister, table.Lookup("RUS", 2016))
	req.Equal(models.RoleRepresentative, table.Lookup("FRA", 2016))
	req.Equal(models.RoleUnknown, table.Lookup("DEU", 2016))
	req.Equal(models.RoleUnknown, table.Lookup("USA", 1971))
}

func TestLoadRoleTable_MissingColumns(t *testing.T) {
	req := require.New(t)

	path := writeRolesWorkbook(t, [][]interface{}{
		{"Country", "Speaker"},
		{"USA", "Barack Obama"},
	})

	_, err := LoadRoleTable(path)
	req.Error(err)
}

func TestLoadRoleTable_MissingFile(t *testing.T) {
	_, err := LoadRoleTable(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
}

func TestNilRoleTableLookup(t *testing.T) {
	var table RoleTable
	require.Equal(t, models.RoleUnknown, table.Lookup("USA", 2016))
}
