// Package sample synthesizes canonical property records: the fallback
// dataset substituted when every real source comes up empty, and the
// filter-aware mock listings backing the site scraper's offline mode.
// Synthetic rows are always distinguishable by their data_source tag.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tanmoycuat/locationIntelligence/models"
)

// Anchor is the base coordinate a synthetic property is jittered around.
type Anchor struct {
	Lat float64
	Lon float64
}

// CityAnchors are the six fixed city centers synthetic records cluster
// around, within ±MaxJitter degrees.
var CityAnchors = map[string]Anchor{
	"Stockholm":  {59.3293, 18.0686},
	"Gothenburg": {57.7089, 11.9746},
	"Malmö":      {55.6050, 13.0038},
	"Copenhagen": {55.6761, 12.5683},
	"Helsinki":   {60.1699, 24.9384},
	"Oslo":       {59.9139, 10.7522},
}

// MaxJitter bounds the random coordinate offset in degrees.
const MaxJitter = 0.05

var propertyTypes = []string{"Office", "Retail", "Industrial", "Residential"}

var cityCountries = map[string]string{
	"Stockholm":  "Sweden",
	"Gothenburg": "Sweden",
	"Malmö":      "Sweden",
	"Copenhagen": "Denmark",
	"Helsinki":   "Finland",
	"Oslo":       "Norway",
}

var cityNames = []string{"Stockholm", "Gothenburg", "Malmö", "Copenhagen", "Helsinki", "Oslo"}

// Generate returns n synthetic records tagged "Sample Data", conforming
// exactly to the canonical schema, with non-nil coordinates.
func Generate(n int) []models.Property {
	properties := make([]models.Property, 0, n)
	for i := 1; i <= n; i++ {
		city := cityNames[rand.Intn(len(cityNames))]
		lat, lon := jitter(CityAnchors[city])

		built := 1950 + rand.Intn(70)
		var renovated *int
		if rand.Float64() > 0.3 {
			year := built + rand.Intn(2023-built+1)
			renovated = &year
		}

		properties = append(properties, models.Property{
			PropertyID:     fmt.Sprintf("%d", i),
			PropertyName:   fmt.Sprintf("Property %d", i),
			PropertyType:   propertyTypes[rand.Intn(len(propertyTypes))],
			Address:        fmt.Sprintf("Street %d, %d", i, rand.Intn(99)+1),
			City:           city,
			Country:        cityCountries[city],
			PostalCode:     fmt.Sprintf("%d", rand.Intn(90000)+10000),
			Latitude:       &lat,
			Longitude:      &lon,
			Size:           rand.Intn(9901) + 100,
			YearBuilt:      &built,
			LastRenovation: renovated,
			DataSource:     "Sample Data",
			LastUpdated:    time.Now().AddDate(0, 0, -(rand.Intn(364) + 1)),
		})
	}
	return properties
}

// GenerateScraped returns filter-aware mock site listings for offline
// development, tagged so they are never mistaken for real scrape output.
func GenerateScraped(n int, f models.Filters) []models.Property {
	types := propertyTypes
	if f.PropertyType != "" {
		types = []string{f.PropertyType}
	}

	cities := cityNames
	if f.City != "" {
		if _, known := CityAnchors[f.City]; !known {
			return nil
		}
		cities = []string{f.City}
	}

	properties := make([]models.Property, 0, n)
	for i := 1; i <= n; i++ {
		city := cities[rand.Intn(len(cities))]
		lat, lon := jitter(CityAnchors[city])

		properties = append(properties, models.Property{
			PropertyID:   fmt.Sprintf("WEB-%d", i),
			PropertyName: fmt.Sprintf("Newsec Property %d", i),
			PropertyType: types[rand.Intn(len(types))],
			Address:      fmt.Sprintf("Web Street %d, %d", i, rand.Intn(99)+1),
			City:         city,
			Country:      cityCountries[city],
			PostalCode:   fmt.Sprintf("%d", rand.Intn(90000)+10000),
			Latitude:     &lat,
			Longitude:    &lon,
			Size:         rand.Intn(9901) + 100,
			DataSource:   "Newsec Website (Mock)",
			LastUpdated:  time.Now(),
		})
	}
	return properties
}

func jitter(a Anchor) (float64, float64) {
	lat := a.Lat + (rand.Float64()*2-1)*MaxJitter
	lon := a.Lon + (rand.Float64()*2-1)*MaxJitter
	return lat, lon
}
