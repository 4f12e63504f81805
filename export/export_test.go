package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tanmoycuat/locationIntelligence/models"
)

func testProperties() []models.Property {
	lat, lon := 59.3293, 18.0686
	built := 1987
	return []models.Property{
		{
			PropertyID:   "1",
			PropertyName: "Waterfront Office",
			PropertyType: "Office",
			Address:      "Kungsgatan 5",
			City:         "Stockholm",
			Country:      "Sweden",
			PostalCode:   "11152",
			Latitude:     &lat,
			Longitude:    &lon,
			Size:         1200,
			YearBuilt:    &built,
			DataSource:   "Synapse Database",
			LastUpdated:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			PropertyID:   "WEB-1",
			PropertyName: "Harbour Retail",
			PropertyType: "Retail",
			Address:      "Storgatan 2",
			City:         "Malmö",
			Country:      "Sweden",
			Size:         800,
			DataSource:   "Newsec Website",
			LastUpdated:  time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestToExcelWritesDataSheet(t *testing.T) {
	dir := t.TempDir()

	path, err := ToExcel(testProperties(), FilteredBaseName(models.Filters{PropertyType: "Office"}), dir)
	require.NoError(t, err)
	assert.Contains(t, path, "property_location_data_office_")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Property Data"}, f.GetSheetList())

	rows, err := f.GetRows("Property Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "property_id", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Waterfront Office", rows[1][1])
	assert.Equal(t, "WEB-1", rows[2][0])

	// nil coordinates and years come out as blank cells, never zero
	lastRenovation, err := f.GetCellValue("Property Data", "L3")
	require.NoError(t, err)
	assert.Equal(t, "", lastRenovation)
}

func TestSummaryReportSheets(t *testing.T) {
	dir := t.TempDir()

	path, err := SummaryReport(testProperties(), dir)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Property Data", "By Property Type", "By City", "By Data Source"},
		f.GetSheetList())

	rows, err := f.GetRows("By Property Type")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Office", "1", "1200", "1200", "1200", "1200"}, rows[1])
	assert.Equal(t, []string{"Retail", "1", "800", "800", "800", "800"}, rows[2])

	rows, err = f.GetRows("By Data Source")
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestToCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := ToCSV(testProperties(), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "property_id,"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Waterfront Office,"), lines[1])
}

func TestFilteredBaseName(t *testing.T) {
	assert.Equal(t, "property_location_data", FilteredBaseName(models.Filters{}))
	assert.Equal(t, "property_location_data_retail_malmö",
		FilteredBaseName(models.Filters{PropertyType: "Retail", City: "Malmö"}))
}
