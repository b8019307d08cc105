package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
)

func TestClient_ReadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"interest_over_time": {"timeline_data": [{"date": "Jan 1, 2025", "values": [{"query": "Acme", "value": "10"}]}]},
		"interest_by_region": [{"geo": "US", "location": "United States", "value": "100"}]
	}`), 0o644))

	c := NewClient(path)
	q := trends.BuildQuery("Acme", "today 3-m", "")

	timeline, err := c.InterestOverTime(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, timeline.Timeline, 1)

	regions, err := c.InterestByRegion(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, regions.Regions, 1)
}

func TestClient_MissingSectionsAreEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	c := NewClient(path)
	timeline, err := c.InterestOverTime(context.Background(), trends.BuildQuery("Acme", "", ""))
	require.NoError(t, err)
	assert.True(t, timeline.Empty())

	regions, err := c.InterestByRegion(context.Background(), trends.BuildQuery("Acme", "", ""))
	require.NoError(t, err)
	assert.True(t, regions.Empty())
}

func TestClient_Errors(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.json"))
	_, err := c.InterestOverTime(context.Background(), trends.BuildQuery("Acme", "", ""))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.InterestByRegion(ctx, trends.BuildQuery("Acme", "", ""))
	assert.ErrorIs(t, err, context.Canceled)
}
