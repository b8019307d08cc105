package render

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/engine"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/lookup"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
)

func TestHTML(t *testing.T) {
	regions, err := lookup.LoadRegions("")
	require.NoError(t, err)

	stats := dm.Statistics{Mean: 20, Max: 30, Min: 10, Volatility: math.NaN()}
	res := &engine.Result{
		Analysis: &dm.AnalysisRecord{
			Keyword:   "Acme <Corp>",
			Timeframe: "today 3-m",
			Geo:       "IN",
			InterestSeries: []dm.TimeSeriesPoint{
				{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Value: 10},
			},
			Statistics:       &stats,
			RegionalInterest: map[string]int{"US": 10, "IN": 30, "SA": 30},
			Insight:          dm.Insight{Text: "rising", Outcome: dm.OutcomeSuccess},
		},
		Report: dm.Report{Text: dm.ReportFailed, Outcome: dm.OutcomeFailed},
	}

	data := NewHTMLData(res, regions, time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "90 Days", data.Timeframe)
	assert.Equal(t, "India(IN)", data.Region)
	assert.Equal(t, []RegionRow{{"India", 30}, {"Saudi Arabia", 30}, {"United States", 10}}, data.Regions)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "Acme &lt;Corp&gt;")
	assert.Contains(t, out, "<strong>20.00</strong>")
	assert.Contains(t, out, "<strong>n/a</strong>")
	assert.Contains(t, out, "<td>2025-01-01</td>")
	assert.Contains(t, out, "Not able to generate campaign reports.")
}

func TestNewHTMLData_NoData(t *testing.T) {
	res := &engine.Result{
		Analysis: &dm.AnalysisRecord{Keyword: "Acme", Timeframe: "now 7-d"},
		Report:   dm.Report{Text: dm.ReportNotGenerated, Outcome: dm.OutcomeSkipped},
	}
	data := NewHTMLData(res, nil, time.Now())
	assert.Equal(t, "Global", data.Region)
	assert.Equal(t, "7 Days", data.Timeframe)
	assert.Empty(t, data.Regions)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, data))
	assert.Contains(t, buf.String(), "No data available")
}

func TestHTML_HourlySeriesKeepsTime(t *testing.T) {
	res := &engine.Result{
		Analysis: &dm.AnalysisRecord{
			Keyword:   "Acme",
			Timeframe: "now 7-d",
			InterestSeries: []dm.TimeSeriesPoint{
				{Date: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), Value: 5},
				{Date: time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC), Value: 7},
			},
		},
		Report: dm.Report{Text: dm.ReportNotGenerated, Outcome: dm.OutcomeSkipped},
	}
	data := NewHTMLData(res, nil, time.Now())
	assert.Equal(t, "2006-01-02 15:04", data.DateLayout)

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "<td>2025-02-20 00:00</td>")
	assert.Contains(t, out, "<td>2025-02-20 08:00</td>")
}
