package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jszwec/csvutil"
	log "github.com/sirupsen/logrus"

	"github.com/tanmoycuat/locationIntelligence/models"
)

// ToCSV writes the dataset as a flat CSV file alongside the workbooks,
// for consumers that want the table without spreadsheet tooling.
func ToCSV(properties []models.Property, dir string) (string, error) {
	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	data, err := csvutil.Marshal(properties)
	if err != nil {
		return "", fmt.Errorf("marshal properties to csv: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("property_location_data_%s.csv", timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}

	log.Infof("csv successfully exported to %s", path)
	return path, nil
}
