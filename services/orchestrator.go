// Package services implements the tiered retrieval policy that drives
// the whole pipeline: database first, then the listings site, then
// general web search, merging and deduplicating whatever succeeded.
package services

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tanmoycuat/locationIntelligence/models"
)

// ErrNoData signals that every tier failed or returned nothing. It is
// distinct from a valid empty result: the caller is expected to
// substitute sample data and surface a user-visible notice.
var ErrNoData = errors.New("no property data available from any source")

// DatabaseSource is the primary tier. A non-nil error means the tier
// produced no data (connection/query failure), never a reason to abort.
type DatabaseSource interface {
	FetchProperties(ctx context.Context, f models.Filters) ([]models.Property, error)
}

// SiteSource is the secondary tier: the listings-site scraper.
type SiteSource interface {
	FetchListings(ctx context.Context, f models.Filters) ([]models.Property, []models.Skip, error)
}

// WebSource is the tertiary tier: general web search extraction.
type WebSource interface {
	SearchProperties(ctx context.Context, query string, maxResults int) ([]models.Property, []models.Skip, error)
}

// Orchestrator escalates through the three source tiers in order. Each
// tier runs to completion before the next begins; ordering of the final
// result is deterministic and given by tier order.
type Orchestrator struct {
	db         DatabaseSource
	site       SiteSource
	web        WebSource
	minViable  int
	maxResults int
}

func NewOrchestrator(db DatabaseSource, site SiteSource, web WebSource, minViable, maxResults int) *Orchestrator {
	if minViable <= 0 {
		minViable = 5
	}
	return &Orchestrator{
		db:         db,
		site:       site,
		web:        web,
		minViable:  minViable,
		maxResults: maxResults,
	}
}

// FetchLocationData runs the escalation policy:
//
//  1. Database tier — accepted alone when it yields at least the minimum
//     viable row count.
//  2. Site-scrape tier — merged with any database rows when viable.
//  3. Web-search tier — everything obtained so far is merged, database
//     rows first, then site rows, then search rows; first occurrence per
//     property_id wins.
//
// An empty merge returns ErrNoData rather than an empty slice.
func (o *Orchestrator) FetchLocationData(ctx context.Context, f models.Filters) ([]models.Property, error) {
	dbRecords, err := o.db.FetchProperties(ctx, f)
	if err != nil {
		log.Errorf("error retrieving data from database: %v", err)
		dbRecords = nil
	}
	if len(dbRecords) >= o.minViable {
		log.Infof("retrieved %d records from database", len(dbRecords))
		return dbRecords, nil
	}

	log.Info("insufficient data from database, attempting to scrape website")
	siteRecords, siteSkips, err := o.site.FetchListings(ctx, f)
	if err != nil {
		log.Errorf("error scraping listings site: %v", err)
		siteRecords = nil
	}
	if len(siteSkips) > 0 {
		log.Warnf("site scrape skipped %d listings", len(siteSkips))
	}
	if len(siteRecords) >= o.minViable {
		if len(dbRecords) > 0 {
			return mergeProperties(dbRecords, siteRecords), nil
		}
		return siteRecords, nil
	}

	log.Info("insufficient data from website, attempting general web search")
	query := buildSearchQuery(f)
	webRecords, webSkips, err := o.web.SearchProperties(ctx, query, o.maxResults)
	if err != nil {
		log.Errorf("error in web search for property information: %v", err)
		webRecords = nil
	}
	if len(webSkips) > 0 {
		log.Warnf("web search skipped %d pages", len(webSkips))
	}

	combined := mergeProperties(dbRecords, siteRecords, webRecords)
	if len(combined) == 0 {
		log.Warn("no data available from any source (database, website, or web search)")
		return nil, ErrNoData
	}
	log.Infof("combined data from multiple sources: %d total properties", len(combined))
	return combined, nil
}

// mergeProperties concatenates tiers in precedence order and drops later
// duplicates by property_id. Deduplication is exact-match on the id only:
// records from different id namespaces are never merged, however similar
// their contents.
func mergeProperties(tiers ...[]models.Property) []models.Property {
	var merged []models.Property
	seen := make(map[string]struct{})
	for _, tier := range tiers {
		for _, p := range tier {
			if _, dup := seen[p.PropertyID]; dup {
				continue
			}
			seen[p.PropertyID] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}

// supportedCountries are the country terms recognized in search queries.
var supportedCountries = []string{"sweden", "denmark", "norway", "finland"}

// buildSearchQuery folds the requested filters into a web search query,
// anchoring it to Sweden when no supported country is already present.
func buildSearchQuery(f models.Filters) string {
	query := "commercial property"
	if f.PropertyType != "" {
		query += " " + f.PropertyType
	}
	if f.City != "" {
		query += " " + f.City
	}

	lower := strings.ToLower(query)
	for _, country := range supportedCountries {
		if strings.Contains(lower, country) {
			return query
		}
	}
	return query + " Sweden"
}

// ApplySizeFilter narrows records by the min/max size predicates — the
// one filter no source can express server-side, applied post-hoc by the
// consumer.
func ApplySizeFilter(records []models.Property, f models.Filters) []models.Property {
	if f.MinSize <= 0 && f.MaxSize <= 0 {
		return records
	}
	filtered := make([]models.Property, 0, len(records))
	for _, p := range records {
		if f.MinSize > 0 && p.Size < f.MinSize {
			continue
		}
		if f.MaxSize > 0 && p.Size > f.MaxSize {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
