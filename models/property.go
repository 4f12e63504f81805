package models

import (
	"strings"
	"time"
)

// Property is the canonical record every source is normalized into.
// IDs live in disjoint namespaces per source: numeric text for database
// rows, "WEB-<n>" for site-scraped rows and "WEB-SEARCH-<n>" for
// web-search rows, so cross-source deduplication works on PropertyID
// equality alone.
type Property struct {
	PropertyID     string     `json:"property_id" csv:"property_id"`
	PropertyName   string     `json:"property_name" csv:"property_name"`
	PropertyType   string     `json:"property_type" csv:"property_type"`
	Address        string     `json:"address" csv:"address"`
	City           string     `json:"city" csv:"city"`
	Country        string     `json:"country" csv:"country"`
	PostalCode     string     `json:"postal_code" csv:"postal_code"`
	Latitude       *float64   `json:"latitude" csv:"latitude"`
	Longitude      *float64   `json:"longitude" csv:"longitude"`
	Size           int        `json:"size" csv:"size"`
	YearBuilt      *int       `json:"year_built" csv:"year_built"`
	LastRenovation *int       `json:"last_renovation" csv:"last_renovation"`
	DataSource     string     `json:"data_source" csv:"data_source"`
	LastUpdated    time.Time  `json:"last_updated" csv:"last_updated"`
}

// Filters holds the optional predicates passed uniformly to every source.
// Each source applies only what it can express server-side; MinSize/MaxSize
// are applied post-hoc by the consumer.
type Filters struct {
	PropertyType string
	City         string
	StartDate    time.Time // zero value = unset
	EndDate      time.Time
	MinSize      int
	MaxSize      int // 0 = unbounded
}

// HasDateRange reports whether both ends of the date range are set.
func (f Filters) HasDateRange() bool {
	return !f.StartDate.IsZero() && !f.EndDate.IsZero()
}

// Skip records one listing or page that was dropped during extraction,
// so partial-failure counts are observable instead of log-only.
type Skip struct {
	Item   string
	Reason string
}

const maxNameLength = 100

// Normalize coerces a scraped or searched record into the canonical shape:
// trimmed text, "Unknown" defaults for type and name-less records, and a
// bounded name length. Database rows are trusted as-is and skip this.
func Normalize(p Property) Property {
	p.PropertyName = strings.TrimSpace(p.PropertyName)
	p.PropertyType = strings.TrimSpace(p.PropertyType)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.Country = strings.TrimSpace(p.Country)
	p.PostalCode = strings.TrimSpace(p.PostalCode)
	if p.PropertyType == "" {
		p.PropertyType = "Unknown"
	}
	if len(p.PropertyName) > maxNameLength {
		p.PropertyName = p.PropertyName[:maxNameLength]
	}
	return p
}
