package scraper

import "regexp"

// CSS selectors and extraction patterns used across the scraper.
// Centralising them makes future updates trivial.
const (
	// Listing page: container conventions tried in order.
	ListingCardSelector     = `div.property-card`
	ListingFallbackSelector = `div.property-listing`
	ListingArticleSelector  = `article.property`

	// Listing card fields
	TitleSelector   = `h2.property-title`
	TypeSelector    = `span.property-type, div.property-type`
	AddressSelector = `div.property-address, span.property-location`
	SizeSelector    = `span.property-size, div.property-size`

	// Arbitrary third-party pages mined by the web search source.
	HeadingSelector       = `h1`
	HeadingFallback       = `h2`
	AddressElementTags    = `div, span`
	AddressFallbackScopes = `p, li, div, span`
)

var (
	postalCodePattern = regexp.MustCompile(`\b\d{5}\b`)

	// Listing cards carry a tight "1,234 sqm" format.
	listingSizePattern = regexp.MustCompile(`(\d+(?:,\d+)?)\s*(?:sqm|m²)`)

	// Unstructured pages need the loose variant.
	sizePattern = regexp.MustCompile(`(?i)(\d[\d\s,.]*)\s*(?:m²|sqm|sq\.m|square meters)`)

	yearBuiltPattern = regexp.MustCompile(`(?i)(?:built|constructed)(?:\s+in)?\s+(\d{4})`)

	propertyTypeLabelPattern = regexp.MustCompile(`(?i)(?:property|building)\s+type[^\n]*`)

	addressClassPattern = regexp.MustCompile(`(?i)address|location`)
	addressTextPattern  = regexp.MustCompile(`(?i)\b(?:address|location)\b`)
)

// countryAliases maps every recognized country spelling to its canonical
// name; detection order is fixed so mixed-country text stays deterministic.
// Anything else defaults to Sweden downstream.
var countryAliases = []struct {
	Alias     string
	Canonical string
}{
	{"Sweden", "Sweden"},
	{"Danmark", "Denmark"},
	{"Denmark", "Denmark"},
	{"Norway", "Norway"},
	{"Finland", "Finland"},
}

func isCountryName(s string) bool {
	for _, c := range countryAliases {
		if s == c.Alias {
			return true
		}
	}
	return false
}
