package utils

import (
	"sort"
	"strings"

	"github.com/tanmoycuat/locationIntelligence/models"
)

type CityCount struct {
	City  string
	Count int
}

type SourceCount struct {
	Source string
	Count  int
}

type SummaryStats struct {
	TotalProperties     int
	TotalSize           int
	AverageSize         float64
	MinimumSize         int
	MaximumSize         int
	LargestProperty     models.Property
	PropertyTypes       int
	PropertiesPerCity   []CityCount
	PropertiesPerSource []SourceCount
}

// BuildSummaryStats aggregates the final merged dataset into the figures
// shown by the CLI summary and the exported summary report.
func BuildSummaryStats(properties []models.Property) SummaryStats {
	stats := SummaryStats{TotalProperties: len(properties)}
	if len(properties) == 0 {
		return stats
	}

	cityCounts := make(map[string]int)
	sourceCounts := make(map[string]int)
	typeSet := make(map[string]struct{})

	minSize := properties[0].Size
	maxSize := properties[0].Size
	largest := properties[0]

	for _, p := range properties {
		city := strings.TrimSpace(p.City)
		if city == "" {
			city = "Unknown"
		}
		cityCounts[city]++
		sourceCounts[p.DataSource]++
		typeSet[p.PropertyType] = struct{}{}

		stats.TotalSize += p.Size
		if p.Size < minSize {
			minSize = p.Size
		}
		if p.Size > maxSize {
			maxSize = p.Size
			largest = p
		}
	}

	stats.AverageSize = float64(stats.TotalSize) / float64(len(properties))
	stats.MinimumSize = minSize
	stats.MaximumSize = maxSize
	stats.LargestProperty = largest
	stats.PropertyTypes = len(typeSet)

	perCity := make([]CityCount, 0, len(cityCounts))
	for city, count := range cityCounts {
		perCity = append(perCity, CityCount{City: city, Count: count})
	}
	sort.Slice(perCity, func(i, j int) bool {
		if perCity[i].Count == perCity[j].Count {
			return perCity[i].City < perCity[j].City
		}
		return perCity[i].Count > perCity[j].Count
	})
	stats.PropertiesPerCity = perCity

	perSource := make([]SourceCount, 0, len(sourceCounts))
	for source, count := range sourceCounts {
		perSource = append(perSource, SourceCount{Source: source, Count: count})
	}
	sort.Slice(perSource, func(i, j int) bool {
		if perSource[i].Count == perSource[j].Count {
			return perSource[i].Source < perSource[j].Source
		}
		return perSource[i].Count > perSource[j].Count
	})
	stats.PropertiesPerSource = perSource

	return stats
}
