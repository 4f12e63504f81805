// Package export serializes the final merged dataset to spreadsheet
// workbooks and CSV. It is a plain consumer of the canonical record
// table; nothing here feeds back into the pipeline.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/tanmoycuat/locationIntelligence/models"
)

const (
	dataSheet   = "Property Data"
	maxColWidth = 30
)

var header = []string{
	"property_id", "property_name", "property_type", "address", "city",
	"country", "postal_code", "latitude", "longitude", "size",
	"year_built", "last_renovation", "data_source", "last_updated",
}

// ToExcel writes the dataset to a timestamped workbook under dir and
// returns the file path.
func ToExcel(properties []models.Property, baseName, dir string) (string, error) {
	if baseName == "" {
		baseName = "property_location_data"
	}
	path, err := exportPath(dir, baseName)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeDataSheet(f, properties); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	log.Infof("data successfully exported to %s", path)
	return path, nil
}

// FilteredBaseName folds active filters into the export filename.
func FilteredBaseName(f models.Filters) string {
	parts := []string{"property_location_data"}
	if f.PropertyType != "" {
		parts = append(parts, strings.ToLower(f.PropertyType))
	}
	if f.City != "" {
		parts = append(parts, strings.ToLower(f.City))
	}
	return strings.Join(parts, "_")
}

// SummaryReport writes the dataset plus grouped-summary sheets: counts
// and size aggregates by property type, by city and by data source.
func SummaryReport(properties []models.Property, dir string) (string, error) {
	path, err := exportPath(dir, "property_summary_report")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeDataSheet(f, properties); err != nil {
		return "", err
	}

	typeRows := [][]any{}
	for _, g := range groupBySize(properties, func(p models.Property) string { return p.PropertyType }) {
		typeRows = append(typeRows, []any{g.Key, g.Count, g.Sum, g.Mean(), g.Min, g.Max})
	}
	if err := writeSheet(f, "By Property Type",
		[]string{"Property Type", "Count", "Total Size (sqm)", "Avg Size (sqm)", "Min Size (sqm)", "Max Size (sqm)"},
		typeRows); err != nil {
		return "", err
	}

	cityRows := [][]any{}
	for _, g := range groupBySize(properties, func(p models.Property) string { return p.City }) {
		cityRows = append(cityRows, []any{g.Key, g.Count, g.Sum, g.Mean()})
	}
	if err := writeSheet(f, "By City",
		[]string{"City", "Count", "Total Size (sqm)", "Avg Size (sqm)"},
		cityRows); err != nil {
		return "", err
	}

	sourceRows := [][]any{}
	for _, g := range groupBySize(properties, func(p models.Property) string { return p.DataSource }) {
		sourceRows = append(sourceRows, []any{g.Key, g.Count})
	}
	if err := writeSheet(f, "By Data Source", []string{"Data Source", "Count"}, sourceRows); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save summary report: %w", err)
	}
	log.Infof("summary report successfully exported to %s", path)
	return path, nil
}

func writeDataSheet(f *excelize.File, properties []models.Property) error {
	f.SetSheetName(f.GetSheetName(0), dataSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	widths := make([]int, len(header))
	for i, col := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(dataSheet, cell, col); err != nil {
			return err
		}
		widths[i] = len(col)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(dataSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for rowIdx, p := range properties {
		values := propertyRow(p)
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return err
			}
			if n := len(fmt.Sprint(v)); n > widths[colIdx] {
				widths[colIdx] = n
			}
		}
	}

	for i, w := range widths {
		w += 2
		if w > maxColWidth {
			w = maxColWidth
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(dataSheet, col, col, float64(w)); err != nil {
			return err
		}
	}

	bottomRight, _ := excelize.CoordinatesToCellName(len(header), len(properties)+1)
	return f.AutoFilter(dataSheet, "A1:"+bottomRight, nil)
}

func propertyRow(p models.Property) []any {
	row := []any{
		p.PropertyID, p.PropertyName, p.PropertyType, p.Address, p.City,
		p.Country, p.PostalCode,
	}
	row = append(row, nullableFloat(p.Latitude), nullableFloat(p.Longitude), p.Size)
	row = append(row, nullableInt(p.YearBuilt), nullableInt(p.LastRenovation))
	row = append(row, p.DataSource, p.LastUpdated.Format("2006-01-02 15:04:05"))
	return row
}

func nullableFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func writeSheet(f *excelize.File, name string, columns []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, col); err != nil {
			return err
		}
	}
	for rowIdx, row := range rows {
		for colIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

type sizeGroup struct {
	Key   string
	Count int
	Sum   int
	Min   int
	Max   int
}

func (g sizeGroup) Mean() float64 {
	if g.Count == 0 {
		return 0
	}
	return float64(g.Sum) / float64(g.Count)
}

func groupBySize(properties []models.Property, key func(models.Property) string) []sizeGroup {
	groups := make(map[string]*sizeGroup)
	for _, p := range properties {
		k := key(p)
		g, ok := groups[k]
		if !ok {
			g = &sizeGroup{Key: k, Min: p.Size, Max: p.Size}
			groups[k] = g
		}
		g.Count++
		g.Sum += p.Size
		if p.Size < g.Min {
			g.Min = p.Size
		}
		if p.Size > g.Max {
			g.Max = p.Size
		}
	}

	out := make([]sizeGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func exportPath(dir, baseName string) (string, error) {
	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", baseName, timestamp)), nil
}
