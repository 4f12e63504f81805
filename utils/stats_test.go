package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanmoycuat/locationIntelligence/models"
)

func prop(id, city, propertyType, source string, size int) models.Property {
	return models.Property{
		PropertyID:   id,
		PropertyName: "Property " + id,
		PropertyType: propertyType,
		City:         city,
		DataSource:   source,
		Size:         size,
	}
}

func TestBuildSummaryStats(t *testing.T) {
	stats := BuildSummaryStats([]models.Property{
		prop("1", "Stockholm", "Office", "Synapse Database", 1000),
		prop("2", "Stockholm", "Office", "Synapse Database", 3000),
		prop("3", "Malmö", "Retail", "Newsec Website", 500),
		prop("4", "", "Office", "Newsec Website", 1500),
	})

	assert.Equal(t, 4, stats.TotalProperties)
	assert.Equal(t, 6000, stats.TotalSize)
	assert.InDelta(t, 1500.0, stats.AverageSize, 0.001)
	assert.Equal(t, 500, stats.MinimumSize)
	assert.Equal(t, 3000, stats.MaximumSize)
	assert.Equal(t, "2", stats.LargestProperty.PropertyID)
	assert.Equal(t, 2, stats.PropertyTypes)

	require.Len(t, stats.PropertiesPerCity, 3)
	assert.Equal(t, CityCount{City: "Stockholm", Count: 2}, stats.PropertiesPerCity[0])
	// ties broken alphabetically, blank city folded into Unknown
	assert.Equal(t, CityCount{City: "Malmö", Count: 1}, stats.PropertiesPerCity[1])
	assert.Equal(t, CityCount{City: "Unknown", Count: 1}, stats.PropertiesPerCity[2])

	require.Len(t, stats.PropertiesPerSource, 2)
	assert.Equal(t, SourceCount{Source: "Newsec Website", Count: 2}, stats.PropertiesPerSource[0])
	assert.Equal(t, SourceCount{Source: "Synapse Database", Count: 2}, stats.PropertiesPerSource[1])
}

func TestBuildSummaryStatsEmpty(t *testing.T) {
	stats := BuildSummaryStats(nil)
	assert.Equal(t, 0, stats.TotalProperties)
	assert.Zero(t, stats.AverageSize)
	assert.Empty(t, stats.PropertiesPerCity)
}
