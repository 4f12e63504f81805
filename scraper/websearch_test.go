package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanmoycuat/locationIntelligence/config"
)

func searchConfig(targets []string) config.Config {
	cfg := config.Default()
	cfg.SearchTargets = targets
	cfg.ListingDomains = []string{"127.0.0.1"}
	cfg.PageDelay = 0
	cfg.EngineDelay = 0
	return cfg
}

func listingPageHTML(name string) string {
	return fmt.Sprintf(`<html><body>
		<h1>%s</h1>
		<div class="address">Vasagatan 12, Stockholm, Sweden</div>
		<p>Property Type: Office</p>
		<p>This landmark was built in 1995 and offers 1,200 sqm of space.</p>
	</body></html>`, name)
}

func TestSearchPropertiesMinesLinkedPages(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/listing/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPageHTML("Vasagatan 12")))
	})
	mux.HandleFunc("/listing/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPageHTML("Harbour House")))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<a href="%[1]s/listing/1">Vasagatan 12</a>
			<a href="%[1]s/listing/2">Harbour House</a>
			<a href="%[1]s/listing/1">duplicate</a>
			<a href="https://www.google.com/something">engine internal</a>
			<a href="https://example.com/off-domain">elsewhere</a>
			<a href="/relative">relative</a>
			<a href="%[1]s/listing/1#frag">fragment</a>
		</body></html>`, srv.URL)
	})

	geo := &fixedGeocoder{}
	ws := NewWebSearcher(searchConfig([]string{srv.URL + "/search?q="}), geo)

	records, skips, err := ws.SearchProperties(context.Background(), "commercial property Stockholm", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, skips)

	first := records[0]
	assert.Equal(t, "WEB-SEARCH-1", first.PropertyID)
	assert.Equal(t, "Vasagatan 12", first.PropertyName)
	assert.Equal(t, "Office", first.PropertyType)
	assert.Equal(t, "Vasagatan 12", first.Address)
	assert.Equal(t, "Sweden", first.Country)
	assert.Equal(t, 1200, first.Size)
	require.NotNil(t, first.YearBuilt)
	assert.Equal(t, 1995, *first.YearBuilt)
	assert.True(t, strings.HasPrefix(first.DataSource, "Web Search ("), first.DataSource)
	require.NotNil(t, first.Latitude)

	assert.Equal(t, "WEB-SEARCH-2", records[1].PropertyID)
	assert.Equal(t, 2, geo.calls)
}

func TestSearchPropertiesSkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/listing/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPageHTML("Survivor")))
	})
	mux.HandleFunc("/listing/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%[1]s/listing/gone">gone</a><a href="%[1]s/listing/ok">ok</a>`, srv.URL)
	})

	ws := NewWebSearcher(searchConfig([]string{srv.URL + "/search?q="}), nullGeocoder{})
	records, skips, err := ws.SearchProperties(context.Background(), "office", 10)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Survivor", records[0].PropertyName)
	assert.Equal(t, "WEB-SEARCH-1", records[0].PropertyID, "failed pages do not consume ids")
	require.Len(t, skips, 1)
	assert.Contains(t, skips[0].Reason, "404")
}

func TestSearchPropertiesSequenceSpansEngines(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/listing/a", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPageHTML("Alpha")))
	})
	mux.HandleFunc("/listing/b", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPageHTML("Beta")))
	})
	mux.HandleFunc("/one", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/listing/a">a</a>`, srv.URL)
	})
	mux.HandleFunc("/two", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/listing/b">b</a>`, srv.URL)
	})

	ws := NewWebSearcher(searchConfig([]string{
		srv.URL + "/one?q=",
		srv.URL + "/two?q=",
	}), nullGeocoder{})

	records, _, err := ws.SearchProperties(context.Background(), "retail", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "WEB-SEARCH-1", records[0].PropertyID)
	assert.Equal(t, "WEB-SEARCH-2", records[1].PropertyID, "the id sequence runs across engines, never restarts")
}

func TestSearchPropertiesRespectsMaxResults(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("Listing %d", i)
		mux.HandleFunc(fmt.Sprintf("/listing/%d", i), func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(listingPageHTML(name)))
		})
	}
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		for i := 1; i <= 5; i++ {
			fmt.Fprintf(w, `<a href="%s/listing/%d">l%d</a>`, srv.URL, i, i)
		}
	})

	ws := NewWebSearcher(searchConfig([]string{srv.URL + "/search?q="}), nullGeocoder{})
	records, _, err := ws.SearchProperties(context.Background(), "industrial", 2)

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSearchPropertiesAllEnginesDownIsNoData(t *testing.T) {
	ws := NewWebSearcher(searchConfig([]string{"http://127.0.0.1:1/search?q="}), nullGeocoder{})

	records, skips, err := ws.SearchProperties(context.Background(), "anything", 10)
	assert.NoError(t, err, "engine failures degrade to no data, never an error")
	assert.Nil(t, records)
	assert.Len(t, skips, 1)
}

func TestCollectPropertyLinks(t *testing.T) {
	d := doc(t, `
		<a href="https://www.lokalguiden.se/lokal/123">match</a>
		<a href="https://www.google.com/url?q=x">engine</a>
		<a href="https://www.bing.com/r">engine</a>
		<a href="https://www.lokalguiden.se/lokal/123">duplicate</a>
		<a href="https://unrelated.example/page">off domain</a>
		<a href="/local/path">relative</a>
		<a href="https://www.loopnet.com/listing/9#details">fragment</a>
		<a href="https://www.loopnet.com/listing/9">second match</a>
		<a href="">empty</a>`)

	links := collectPropertyLinks(d, []string{"lokalguiden.se", "loopnet.com"})

	require.Len(t, links, 2)
	assert.Equal(t, "https://www.lokalguiden.se/lokal/123", links[0].href)
	assert.Equal(t, "match", links[0].text)
	assert.Equal(t, "https://www.loopnet.com/listing/9", links[1].href)
}
