// Package scraper implements the two lower-confidence tiers of the
// retrieval pipeline: the listings-site scraper and the general web
// search source. Both are best-effort — a missing field gets a default,
// a broken listing or page becomes a Skip, and only a failure of the
// whole fetch surfaces as "no data".
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/tanmoycuat/locationIntelligence/config"
	"github.com/tanmoycuat/locationIntelligence/models"
	"github.com/tanmoycuat/locationIntelligence/sample"
)

// Geocoder resolves an address to coordinates, or (nil, nil) when it
// cannot. Satisfied by geocode.Client.
type Geocoder interface {
	Geocode(ctx context.Context, address, city, country string) (*float64, *float64)
}

// SiteScraper fetches and parses the listings site into canonical records.
type SiteScraper struct {
	client       *http.Client
	geo          Geocoder
	baseURL      string
	userAgents   []string
	listingDelay time.Duration
	mock         bool
}

func NewSiteScraper(cfg config.Config, geo Geocoder) *SiteScraper {
	return &SiteScraper{
		client:       &http.Client{Timeout: cfg.HTTPTimeout},
		geo:          geo,
		baseURL:      cfg.ListingsBaseURL,
		userAgents:   cfg.UserAgents,
		listingDelay: cfg.ListingDelay,
		mock:         cfg.UseMockScraper,
	}
}

// FetchListings scrapes the listings site with filter-derived query
// params. Non-200 responses and pages without any recognizable listing
// container mean "no data" (nil records, nil error); only transport
// failures are errors. Date-range filters are accepted but not enforced:
// scraped pages carry no reliable historical timestamp.
func (s *SiteScraper) FetchListings(ctx context.Context, f models.Filters) ([]models.Property, []models.Skip, error) {
	if s.mock {
		log.Info("using mock listings instead of scraping the site")
		return sample.GenerateScraped(20, f), nil, nil
	}

	pageURL := s.buildURL(f)
	log.Infof("scraping listings site: %s", pageURL)

	doc, status, err := fetchDocument(ctx, s.client, pageURL, randomUserAgent(s.userAgents))
	if err != nil {
		return nil, nil, fmt.Errorf("fetch listings page: %w", err)
	}
	if doc == nil {
		log.Errorf("listings site returned status %d", status)
		return nil, nil, nil
	}

	listings := doc.Find(ListingCardSelector)
	if listings.Length() == 0 {
		listings = doc.Find(ListingFallbackSelector)
	}
	if listings.Length() == 0 {
		listings = doc.Find(ListingArticleSelector)
	}
	if listings.Length() == 0 {
		log.Warn("no property listings found on the page")
		return nil, nil, nil
	}
	log.Infof("found %d property listings", listings.Length())

	var (
		properties []models.Property
		skips      []models.Skip
	)
	listings.Each(func(i int, listing *goquery.Selection) {
		idx := i + 1
		record, ok := s.parseListing(listing, idx)
		if !ok {
			skips = append(skips, models.Skip{
				Item:   fmt.Sprintf("listing %d", idx),
				Reason: "no recognizable listing markup",
			})
			log.Warnf("skipping listing %d: no recognizable listing markup", idx)
			return
		}

		record.Latitude, record.Longitude = s.geo.Geocode(ctx, record.Address, record.City, record.Country)
		properties = append(properties, record)

		sleep(ctx, s.listingDelay)
	})

	log.Infof("successfully scraped %d properties from listings site", len(properties))
	return properties, skips, nil
}

// parseListing extracts one canonical record from a listing container.
// Every field lookup is independently fault-tolerant: primary selector,
// then fallback, then a literal default. ok is false only when the card
// has none of the expected markup at all.
func (s *SiteScraper) parseListing(listing *goquery.Selection, idx int) (models.Property, bool) {
	title := listing.Find(TitleSelector).First()
	typeElem := listing.Find(TypeSelector).First()
	addrElem := listing.Find(AddressSelector).First()
	sizeElem := listing.Find(SizeSelector).First()

	if title.Length() == 0 && typeElem.Length() == 0 && addrElem.Length() == 0 && sizeElem.Length() == 0 {
		return models.Property{}, false
	}

	name := fmt.Sprintf("Property %d", idx)
	if title.Length() > 0 {
		name = strings.TrimSpace(title.Text())
	}

	propertyType := "Unknown"
	if typeElem.Length() > 0 {
		propertyType = strings.TrimSpace(typeElem.Text())
	}

	addressText := strings.TrimSpace(addrElem.Text())
	parts := strings.Split(addressText, ",")
	address := strings.TrimSpace(parts[0])
	city := ""
	if len(parts) > 1 {
		city = strings.TrimSpace(parts[1])
	}
	country := "Sweden"
	if len(parts) > 2 {
		country = strings.TrimSpace(parts[len(parts)-1])
	}

	size, ok := parseListingSize(sizeElem.Text())
	if !ok {
		// Schema completeness over accuracy: synthesize rather than leave null.
		size = randomSize()
	}

	return models.Normalize(models.Property{
		PropertyID:   fmt.Sprintf("WEB-%d", idx),
		PropertyName: name,
		PropertyType: propertyType,
		Address:      address,
		City:         city,
		Country:      country,
		PostalCode:   extractPostalCode(addressText),
		Size:         size,
		DataSource:   "Newsec Website",
		LastUpdated:  time.Now(),
	}), true
}

func (s *SiteScraper) buildURL(f models.Filters) string {
	var params []string
	if f.PropertyType != "" {
		params = append(params, "type="+strings.ToLower(f.PropertyType))
	}
	if f.City != "" {
		params = append(params, "location="+strings.ToLower(f.City))
	}
	if len(params) == 0 {
		return s.baseURL
	}
	return s.baseURL + "?" + strings.Join(params, "&")
}

// fetchDocument GETs a page and parses it. A non-200 response returns a
// nil document with the status, not an error — callers treat it as
// "no data" or a per-page skip.
func fetchDocument(ctx context.Context, client *http.Client, pageURL, userAgent string) (*goquery.Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse page %s: %w", pageURL, err)
	}
	return doc, resp.StatusCode, nil
}

// randomUserAgent picks uniformly from the configured pool to reduce
// trivial blocking.
func randomUserAgent(agents []string) string {
	if len(agents) == 0 {
		return "Mozilla/5.0 (compatible; location-intelligence/1.0)"
	}
	return agents[rand.Intn(len(agents))]
}

func randomSize() int {
	return rand.Intn(9901) + 100 // 100–10000 sqm
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
