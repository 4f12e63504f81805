package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Pure best-effort extraction heuristics over unstructured pages. Regex
// non-match is the common case here, not an error: every function returns
// a default or an ok flag instead of failing.

// extractName returns the first heading's text, or fallback when the page
// has no headings at all.
func extractName(doc *goquery.Document, fallback string) string {
	if h := doc.Find(HeadingSelector).First(); h.Length() > 0 {
		return strings.TrimSpace(h.Text())
	}
	if h := doc.Find(HeadingFallback).First(); h.Length() > 0 {
		return strings.TrimSpace(h.Text())
	}
	return strings.TrimSpace(fallback)
}

// extractAddressText finds the most plausible address text on a page:
// first an element whose class mentions address/location, then any small
// element whose own text does.
func extractAddressText(doc *goquery.Document) string {
	var found string
	doc.Find(AddressElementTags).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if class, ok := s.Attr("class"); ok && addressClassPattern.MatchString(class) {
			found = strings.TrimSpace(s.Text())
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	doc.Find(AddressFallbackScopes).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" && len(text) < 200 && addressTextPattern.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	if found != "" {
		return found
	}
	return "Unknown Address"
}

// extractPropertyType mines text following a "property type"/"building
// type" label, preferring whatever comes after a colon.
func extractPropertyType(text string) string {
	line := propertyTypeLabelPattern.FindString(text)
	if line == "" {
		return "Unknown"
	}
	if i := strings.Index(line, ":"); i >= 0 {
		line = line[i+1:]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "Unknown"
	}
	return line
}

// extractSize parses a square-meter figure from free text, tolerating
// thousand separators in any of the common styles.
func extractSize(text string) (int, bool) {
	m := sizePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	digits := strings.NewReplacer(",", "", ".", "", " ", "", " ", "").Replace(m[1])
	size, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return 0, false
	}
	return size, true
}

// parseListingSize handles the tighter "1,234 sqm" format used on
// listing cards.
func parseListingSize(text string) (int, bool) {
	m := listingSizePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	size, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return size, true
}

// extractYearBuilt parses a "built/constructed [in] YYYY" mention.
func extractYearBuilt(text string) (int, bool) {
	m := yearBuiltPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// extractPostalCode pulls a five-digit postal code out of address text.
func extractPostalCode(text string) string {
	return postalCodePattern.FindString(text)
}

// splitAddress approximates street/city/country from comma-separated
// address text: street is the first token, city the first token that is
// not a known country name, country whichever recognized name appears
// anywhere in the text. Unresolvable parts default to Unknown/Sweden.
func splitAddress(text string) (address, city, country string) {
	address = "Unknown Address"
	city = "Unknown"
	country = "Sweden"

	parts := strings.Split(text, ",")
	if first := strings.TrimSpace(parts[0]); first != "" {
		address = first
	}
	if len(parts) < 2 {
		return address, city, country
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || isCountryName(part) {
			continue
		}
		city = part
		break
	}

	for _, c := range countryAliases {
		if strings.Contains(text, c.Alias) {
			country = c.Canonical
			break
		}
	}
	return address, city, country
}
