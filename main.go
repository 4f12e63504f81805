package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/tanmoycuat/locationIntelligence/config"
	"github.com/tanmoycuat/locationIntelligence/export"
	"github.com/tanmoycuat/locationIntelligence/geocode"
	"github.com/tanmoycuat/locationIntelligence/models"
	"github.com/tanmoycuat/locationIntelligence/sample"
	"github.com/tanmoycuat/locationIntelligence/scraper"
	"github.com/tanmoycuat/locationIntelligence/services"
	"github.com/tanmoycuat/locationIntelligence/storage"
	"github.com/tanmoycuat/locationIntelligence/utils"
)

const sampleSize = 50

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment and defaults")
	}
	cfg := config.Default()

	propertyType := flag.String("type", "", "property type filter (Office, Retail, Industrial, Residential)")
	city := flag.String("city", "", "city filter")
	startDate := flag.String("start", "", "start of last-updated range (YYYY-MM-DD)")
	endDate := flag.String("end", "", "end of last-updated range (YYYY-MM-DD)")
	minSize := flag.Int("min-size", 0, "minimum size in sqm")
	maxSize := flag.Int("max-size", 0, "maximum size in sqm (0 = unbounded)")
	demo := flag.Bool("demo", false, "skip all sources and use sample data")
	summary := flag.Bool("summary", true, "also export the grouped summary report")
	flag.Parse()

	filters := models.Filters{
		PropertyType: *propertyType,
		City:         *city,
		StartDate:    parseDate(*startDate),
		EndDate:      parseDate(*endDate),
		MinSize:      *minSize,
		MaxSize:      *maxSize,
	}

	log.Info("╔═══════════════════════════════════════════════════╗")
	log.Info("║         Property Location Intelligence            ║")
	log.Info("╚═══════════════════════════════════════════════════╝")
	log.Infof("Filters  : type=%q city=%q size=%d–%d", filters.PropertyType, filters.City, filters.MinSize, filters.MaxSize)
	log.Infof("Database : %s:%d/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	log.Infof("Listings : %s", cfg.ListingsBaseURL)
	log.Infof("Exports  : %s", cfg.ExportDir)

	ctx := context.Background()

	data := loadData(ctx, cfg, filters, *demo)
	data = services.ApplySizeFilter(data, filters)
	if len(data) == 0 {
		log.Warn("no properties match the filter criteria — try adjusting the filters")
		return
	}

	stats := utils.BuildSummaryStats(data)
	printStats(stats)

	exportAll(data, filters, cfg.ExportDir, *summary)
}

// loadData runs the tiered retrieval pipeline and substitutes sample
// data with a user-visible warning when every source comes up empty.
func loadData(ctx context.Context, cfg config.Config, filters models.Filters, demo bool) []models.Property {
	if demo {
		log.Info("demo mode: using sample data")
		return sample.Generate(sampleSize)
	}

	store, err := storage.NewStore(cfg)
	if err != nil {
		log.Fatalf("✗ Invalid database configuration: %v", err)
	}
	defer store.Close()

	geocoder := geocode.New(cfg)
	site := scraper.NewSiteScraper(cfg, geocoder)
	web := scraper.NewWebSearcher(cfg, geocoder)
	orchestrator := services.NewOrchestrator(store, site, web, cfg.MinViableRecords, cfg.MaxResults)

	data, err := orchestrator.FetchLocationData(ctx, filters)
	if errors.Is(err, services.ErrNoData) {
		log.Warn("⚠ No data available from database, website, or web search — using sample data for demonstration")
		return sample.Generate(sampleSize)
	}
	if err != nil {
		log.Errorf("✗ Data retrieval error: %v — using sample data for demonstration", err)
		return sample.Generate(sampleSize)
	}
	return data
}

func exportAll(data []models.Property, filters models.Filters, dir string, summary bool) {
	excelPath, err := export.ToExcel(data, export.FilteredBaseName(filters), dir)
	if err != nil {
		log.Errorf("✗ Failed to export Excel workbook: %v", err)
	}
	csvPath, err := export.ToCSV(data, dir)
	if err != nil {
		log.Errorf("✗ Failed to export CSV: %v", err)
	}

	var reportPath string
	if summary {
		reportPath, err = export.SummaryReport(data, dir)
		if err != nil {
			log.Errorf("✗ Failed to export summary report: %v", err)
		}
	}

	log.Info("═══════════════════════════════════════════════════")
	log.Infof("  DONE — %d properties", len(data))
	if excelPath != "" {
		log.Infof("  Excel   → %s", excelPath)
	}
	if csvPath != "" {
		log.Infof("  CSV     → %s", csvPath)
	}
	if reportPath != "" {
		log.Infof("  Summary → %s", reportPath)
	}
	log.Info("═══════════════════════════════════════════════════")
}

func printStats(stats utils.SummaryStats) {
	log.Info("  STATS")
	log.Infof("    Total Properties : %d", stats.TotalProperties)
	log.Infof("    Total Area       : %d sqm", stats.TotalSize)
	log.Infof("    Average Size     : %.0f sqm", stats.AverageSize)
	log.Infof("    Size Range       : %d–%d sqm", stats.MinimumSize, stats.MaximumSize)
	log.Infof("    Property Types   : %d", stats.PropertyTypes)
	if stats.TotalProperties > 0 {
		log.Infof("    Largest Property : %s | %d sqm", stats.LargestProperty.PropertyName, stats.LargestProperty.Size)
	}

	log.Info("    Properties per City")
	for _, cityStat := range stats.PropertiesPerCity {
		log.Infof("      - %s: %d", cityStat.City, cityStat.Count)
	}

	log.Info("    Properties per Source")
	for _, sourceStat := range stats.PropertiesPerSource {
		log.Infof("      - %s: %d", sourceStat.Source, sourceStat.Count)
	}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Warnf("ignoring unparseable date %q (want YYYY-MM-DD)", s)
		return time.Time{}
	}
	return t
}
