package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/series"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
)

const timeseriesBody = `{
  "search_metadata": {"status": "Success"},
  "interest_over_time": {
    "timeline_data": [
      {"date": "Jan 1, 2025", "timestamp": "1735689600", "values": [{"query": "Acme", "value": "10", "extracted_value": 10}]},
      {"date": "Jan 2, 2025", "timestamp": "1735776000", "values": [{"query": "Acme", "value": "<1", "extracted_value": 0}]}
    ]
  }
}`

const geoBody = `{
  "interest_by_region": [
    {"geo": "US", "location": "United States", "max_value_index": 0, "value": "100", "extracted_value": 100},
    {"geo": "IN", "location": "India", "max_value_index": 0, "value": "42", "extracted_value": 42}
  ]
}`

func TestClient_InterestOverTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_trends", q.Get("engine"))
		assert.Equal(t, "TIMESERIES", q.Get("data_type"))
		assert.Equal(t, "Acme", q.Get("q"))
		assert.Equal(t, "today 3-m", q.Get("date"))
		assert.Equal(t, "IN", q.Get("geo"))
		assert.Equal(t, "secret", q.Get("api_key"))
		w.Write([]byte(timeseriesBody))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, 5)
	payload, err := c.InterestOverTime(context.Background(), trends.BuildQuery("Acme", "today 3-m", "IN"))
	require.NoError(t, err)
	require.Len(t, payload.Timeline, 2)

	points := series.Normalize(payload, "Acme")
	require.Len(t, points, 2)
	assert.Equal(t, 10, points[0].Value)
	assert.Equal(t, 0, points[1].Value)
}

func TestClient_InterestByRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GEO_MAP_0", r.URL.Query().Get("data_type"))
		assert.False(t, r.URL.Query().Has("geo"))
		w.Write([]byte(geoBody))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, 5)
	payload, err := c.InterestByRegion(context.Background(), trends.BuildQuery("Acme", "today 1-m", ""))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"US": 100, "IN": 42}, series.NormalizeRegions(payload))
}

func TestClient_NoResultsIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Google Trends hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, 5)
	payload, err := c.InterestOverTime(context.Background(), trends.BuildQuery("zzzz", "now 7-d", ""))
	require.NoError(t, err)
	assert.True(t, payload.Empty())

	regions, err := c.InterestByRegion(context.Background(), trends.BuildQuery("zzzz", "now 7-d", ""))
	require.NoError(t, err)
	assert.True(t, regions.Empty())
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "rate":
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": "Your account has run out of searches."}`))
		case "invalid":
			w.Write([]byte(`{"error": "Invalid API key."}`))
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, 5)

	_, err := c.InterestOverTime(context.Background(), trends.BuildQuery("rate", "today 3-m", ""))
	assert.ErrorContains(t, err, "status 429")

	_, err = c.InterestOverTime(context.Background(), trends.BuildQuery("invalid", "today 3-m", ""))
	assert.ErrorContains(t, err, "Invalid API key")

	_, err = c.InterestByRegion(context.Background(), trends.BuildQuery("broken", "today 3-m", ""))
	assert.ErrorContains(t, err, "unmarshal response failed")
}
