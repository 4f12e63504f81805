package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/tanmoycuat/locationIntelligence/config"
	"github.com/tanmoycuat/locationIntelligence/models"
)

// WebSearcher is the tertiary source: it runs domain-restricted search
// engine queries, follows candidate result links, and heuristically mines
// property attributes out of whatever pages it finds.
type WebSearcher struct {
	client      *http.Client
	geo         Geocoder
	targets     []string
	domains     []string
	userAgents  []string
	pageDelay   time.Duration
	engineDelay time.Duration
}

func NewWebSearcher(cfg config.Config, geo Geocoder) *WebSearcher {
	return &WebSearcher{
		client:      &http.Client{Timeout: cfg.HTTPTimeout},
		geo:         geo,
		targets:     cfg.SearchTargets,
		domains:     cfg.ListingDomains,
		userAgents:  cfg.UserAgents,
		pageDelay:   cfg.PageDelay,
		engineDelay: cfg.EngineDelay,
	}
}

type resultLink struct {
	href string
	text string
}

// SearchProperties issues one search per configured engine template and
// mines up to maxResults linked pages per template. Per-engine and
// per-page failures become Skips; nil records with a nil error means
// nothing could be extracted anywhere.
func (w *WebSearcher) SearchProperties(ctx context.Context, query string, maxResults int) ([]models.Property, []models.Skip, error) {
	log.Infof("performing web search for: %s", query)

	var (
		properties []models.Property
		skips      []models.Skip
		sequence   int
	)

	for _, target := range w.targets {
		searchURL := target + strings.ReplaceAll(query, " ", "+")

		doc, status, err := fetchDocument(ctx, w.client, searchURL, randomUserAgent(w.userAgents))
		if err != nil {
			skips = append(skips, models.Skip{Item: target, Reason: err.Error()})
			log.Errorf("error searching %s: %v", target, err)
			sleep(ctx, w.engineDelay)
			continue
		}
		if doc == nil {
			skips = append(skips, models.Skip{Item: target, Reason: fmt.Sprintf("status %d", status)})
			log.Warnf("failed to retrieve search results from %s: status %d", target, status)
			sleep(ctx, w.engineDelay)
			continue
		}

		links := collectPropertyLinks(doc, w.domains)
		if maxResults > 0 && len(links) > maxResults {
			links = links[:maxResults]
		}

		for _, link := range links {
			record, skip := w.mineListingPage(ctx, link)
			if skip != nil {
				skips = append(skips, *skip)
				continue
			}
			sequence++
			record.PropertyID = fmt.Sprintf("WEB-SEARCH-%d", sequence)
			properties = append(properties, record)

			sleep(ctx, w.pageDelay)
		}

		sleep(ctx, w.engineDelay)
	}

	if len(properties) == 0 {
		log.Warn("no property data could be extracted from web search")
		return nil, skips, nil
	}
	log.Infof("successfully extracted %d properties from web search", len(properties))
	return properties, skips, nil
}

// mineListingPage fetches one candidate page and applies the extraction
// heuristics. Failures skip only this page.
func (w *WebSearcher) mineListingPage(ctx context.Context, link resultLink) (models.Property, *models.Skip) {
	doc, status, err := fetchDocument(ctx, w.client, link.href, randomUserAgent(w.userAgents))
	if err != nil {
		log.Errorf("error processing property page %s: %v", link.href, err)
		return models.Property{}, &models.Skip{Item: link.href, Reason: err.Error()}
	}
	if doc == nil {
		return models.Property{}, &models.Skip{Item: link.href, Reason: fmt.Sprintf("status %d", status)}
	}

	pageText := doc.Text()

	addressText := extractAddressText(doc)
	address, city, country := splitAddress(addressText)

	size, ok := extractSize(pageText)
	if !ok {
		size = randomSize()
	}

	record := models.Property{
		PropertyName: extractName(doc, link.text),
		PropertyType: extractPropertyType(pageText),
		Address:      address,
		City:         city,
		Country:      country,
		Size:         size,
		DataSource:   fmt.Sprintf("Web Search (%s...)", truncate(link.href, 50)),
		LastUpdated:  time.Now(),
	}
	if year, ok := extractYearBuilt(pageText); ok {
		record.YearBuilt = &year
	}

	record.Latitude, record.Longitude = w.geo.Geocode(ctx, address, city, country)
	return models.Normalize(record), nil
}

// collectPropertyLinks filters a results page's anchors down to external
// property-listing links: engine-internal, fragment, relative and empty
// hrefs are dropped, only known listing domains are kept, and hrefs are
// deduplicated within the pass.
func collectPropertyLinks(doc *goquery.Document, domains []string) []resultLink {
	var links []resultLink
	seen := make(map[string]struct{})

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" ||
			strings.Contains(href, "google") ||
			strings.Contains(href, "bing") ||
			strings.Contains(href, "#") ||
			strings.HasPrefix(href, "/") {
			return
		}

		matched := false
		for _, domain := range domains {
			if strings.Contains(href, domain) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}

		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, resultLink{href: href, text: strings.TrimSpace(a.Text())})
	})

	return links
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
