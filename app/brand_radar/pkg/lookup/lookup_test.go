package lookup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "today 3-m"},
		{"90 Days", "today 3-m"},
		{"90 days", "today 3-m"},
		{"7 Days", "now 7-d"},
		{"now 15-d", "now 15-d"},
		{"30 Days", "today 1-m"},
		{"today 2-m", "today 2-m"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tf, err := ParseTimeframe(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tf.Token)
		})
	}

	_, err := ParseTimeframe("12 Months")
	assert.Error(t, err)
}

func TestTimeframe_DateRangeTotal(t *testing.T) {
	now := time.Date(2025, 2, 21, 15, 4, 5, 0, time.UTC)
	for _, tf := range Timeframes {
		start, end := tf.DateRange(now)
		assert.False(t, start.After(end), tf.Label)
		assert.Equal(t, now, end, tf.Label)
		assert.Equal(t, tf.Days, int(end.Sub(start).Hours()/24), tf.Label)

		// every token and label round-trips through ParseTimeframe
		byToken, err := ParseTimeframe(tf.Token)
		require.NoError(t, err)
		assert.Equal(t, tf, byToken)
		byLabel, err := ParseTimeframe(tf.Label)
		require.NoError(t, err)
		assert.Equal(t, tf, byLabel)
	}

	start, end := DefaultTimeframe.DateStrings(now)
	assert.Equal(t, "2024-11-23", start)
	assert.Equal(t, "2025-02-21", end)
}

func TestRegions_Bijection(t *testing.T) {
	r, err := LoadRegions("")
	require.NoError(t, err)

	names := r.Names()
	require.NotEmpty(t, names)
	assert.Equal(t, GlobalName, names[0])

	for _, name := range names {
		code, ok := r.Code(name)
		require.True(t, ok, name)
		back, ok := r.Name(code)
		require.True(t, ok, name)
		assert.Equal(t, name, back)
	}

	code, _ := r.Code(GlobalName)
	assert.Equal(t, "", code)
	name, _ := r.Name("")
	assert.Equal(t, GlobalName, name)
}

func TestRegions_ResolveAndDisplay(t *testing.T) {
	r, err := ParseRegions([]byte(`{"India": "IN", "Saudi Arabia": "sa"}`))
	require.NoError(t, err)

	code, err := r.Resolve("India")
	require.NoError(t, err)
	assert.Equal(t, "IN", code)

	code, err = r.Resolve("sa")
	require.NoError(t, err)
	assert.Equal(t, "SA", code)

	code, err = r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "", code)

	_, err = r.Resolve("Atlantis")
	assert.Error(t, err)

	assert.Equal(t, "India(IN)", r.DisplayName("IN"))
	assert.Equal(t, "Global", r.DisplayName(""))
	assert.Equal(t, "XX", r.DisplayName("XX"))
}

func TestParseRegions_RejectsNonBijective(t *testing.T) {
	_, err := ParseRegions([]byte(`{"India": "IN", "Bharat": "IN"}`))
	assert.ErrorContains(t, err, "code IN")

	_, err = ParseRegions([]byte(`{"Global": "GL"}`))
	assert.Error(t, err)

	_, err = ParseRegions([]byte(`{"Nowhere": ""}`))
	assert.Error(t, err)

	_, err = ParseRegions([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadRegions_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Japan": "JP"}`), 0o644))

	r, err := LoadRegions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Global", "Japan"}, r.Names())

	_, err = LoadRegions(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
