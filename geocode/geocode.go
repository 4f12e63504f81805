// Package geocode resolves free-text addresses to coordinates through a
// Nominatim-compatible search endpoint. Geocoding failure is never fatal:
// exhausting retries yields nil coordinates and the surrounding record
// keeps going without them.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tanmoycuat/locationIntelligence/config"
)

// Client queries a geocoding service with bounded retries.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	attempts  int
	backoff   time.Duration
}

// New builds a Client from cfg. Backoff between attempts grows linearly
// from cfg.GeocodeBackoff; setting it to zero makes retries immediate,
// which is how tests exercise the retry policy.
func New(cfg config.Config) *Client {
	attempts := cfg.GeocodeAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &Client{
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:   cfg.GeocodeBaseURL,
		userAgent: "location-intelligence-geocoder/1.0",
		attempts:  attempts,
		backoff:   cfg.GeocodeBackoff,
	}
}

// Geocode resolves "address, city, country" to coordinates. On the
// second-to-last attempt it additionally tries a reduced city+country
// query, which rescues malformed street addresses while still anchoring
// the record to a locality. Returns (nil, nil) when every attempt fails.
func (c *Client) Geocode(ctx context.Context, address, city, country string) (*float64, *float64) {
	full := fmt.Sprintf("%s, %s, %s", address, city, country)

	for attempt := 0; attempt < c.attempts; attempt++ {
		lat, lon, err := c.lookup(ctx, full)
		if err == nil && lat != nil {
			return lat, lon
		}
		if err != nil {
			log.Warnf("geocoding error on attempt %d/%d: %v", attempt+1, c.attempts, err)
		}

		if attempt == c.attempts-2 {
			lat, lon, err = c.lookup(ctx, fmt.Sprintf("%s, %s", city, country))
			if err == nil && lat != nil {
				return lat, lon
			}
		}

		if attempt < c.attempts-1 {
			sleep(ctx, c.backoff*time.Duration(attempt+1))
		}
	}

	log.Errorf("failed to geocode address: %s", full)
	return nil, nil
}

// lookup issues one /search request. A query that resolves to nothing
// returns (nil, nil, nil); only transport and service failures are errors.
func (c *Client) lookup(ctx context.Context, query string) (*float64, *float64, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("geocoding service status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	// Nominatim returns lat/lon as JSON strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, nil, fmt.Errorf("parse geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, nil, errors.New("geocoding response has non-numeric latitude")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, nil, errors.New("geocoding response has non-numeric longitude")
	}
	return &lat, &lon, nil
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
