package render

import (
	"html/template"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/engine"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/lookup"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/series"
)

// RegionRow 地区热度表中的一行
type RegionRow struct {
	Name  string
	Value int
}

// HTMLData 用于模板渲染的数据
type HTMLData struct {
	Date       string
	DateLayout string // 序列日期格式，小时级数据带时分
	Keyword    string
	Timeframe  string
	Region     string
	Series     []dm.TimeSeriesPoint
	Stats      *dm.Statistics
	Regions    []RegionRow
	Insight    dm.Insight
	Report     dm.Report
}

// NewHTMLData 由分析结果构造模板数据，地区按热度降序
func NewHTMLData(res *engine.Result, regions *lookup.Regions, now time.Time) HTMLData {
	rec := res.Analysis
	data := HTMLData{
		Date:       now.Format(time.DateOnly),
		DateLayout: series.DateLayout(rec.InterestSeries),
		Keyword:    rec.Keyword,
		Series:     rec.InterestSeries,
		Stats:      rec.Statistics,
		Insight:    rec.Insight,
		Report:     res.Report,
	}
	data.Timeframe = rec.Timeframe
	if tf, err := lookup.ParseTimeframe(rec.Timeframe); err == nil {
		data.Timeframe = tf.Label
	}
	data.Region = rec.Geo
	if regions != nil {
		data.Region = regions.DisplayName(rec.Geo)
	} else if rec.Geo == "" {
		data.Region = lookup.GlobalName
	}

	for geo, v := range rec.RegionalInterest {
		name := geo
		if regions != nil {
			if n, ok := regions.Name(geo); ok {
				name = n
			}
		}
		data.Regions = append(data.Regions, RegionRow{Name: name, Value: v})
	}
	sort.Slice(data.Regions, func(i, j int) bool {
		if data.Regions[i].Value != data.Regions[j].Value {
			return data.Regions[i].Value > data.Regions[j].Value
		}
		return data.Regions[i].Name < data.Regions[j].Name
	})
	return data
}

var funcs = template.FuncMap{
	"date": func(t time.Time, layout string) string { return t.Format(layout) },
	"num": func(f float64) string {
		if math.IsNaN(f) {
			return "n/a"
		}
		return strconv.FormatFloat(f, 'f', 2, 64)
	},
}

var tpl = template.Must(template.New("report").Funcs(funcs).Parse(htmlTpl))

// HTML 渲染分析报告页面
func HTML(w io.Writer, data HTMLData) error {
	return tpl.Execute(w, data)
}

const htmlTpl = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>品牌雷达 | {{.Keyword}}</title>
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; background: #f8fafc; color: #1e293b; line-height: 1.6; margin: 0; padding: 20px; }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 32px; }
        .meta { color: #64748b; }
        .card { background: #fff; border: 1px solid #e2e8f0; border-radius: 12px; padding: 24px; margin-bottom: 24px; }
        .stats { display: grid; grid-template-columns: repeat(4, 1fr); gap: 12px; }
        .stat { background: #eff6ff; border-radius: 8px; padding: 12px; text-align: center; }
        table { width: 100%; border-collapse: collapse; }
        td, th { padding: 6px 8px; border-bottom: 1px solid #f1f5f9; text-align: left; }
        .outcome { font-size: 0.85rem; color: #64748b; }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>{{.Keyword}}</h1>
        <div class="meta">{{.Timeframe}} · {{.Region}} · {{.Date}}</div>
    </header>

    <div class="card">
        <h2>Interest Statistics</h2>
        {{if .Stats}}
        <div class="stats">
            <div class="stat"><div>Mean</div><strong>{{num .Stats.Mean}}</strong></div>
            <div class="stat"><div>Max</div><strong>{{num .Stats.Max}}</strong></div>
            <div class="stat"><div>Min</div><strong>{{num .Stats.Min}}</strong></div>
            <div class="stat"><div>Volatility</div><strong>{{num .Stats.Volatility}}</strong></div>
        </div>
        {{else}}
        <p>No data available for the selected keyword and timeframe.</p>
        {{end}}
    </div>

    {{if .Series}}
    <div class="card">
        <h2>Interest Over Time</h2>
        <table>
            <tr><th>Date</th><th>Interest</th></tr>
            {{range .Series}}<tr><td>{{date .Date $.DateLayout}}</td><td>{{.Value}}</td></tr>
            {{end}}
        </table>
    </div>
    {{end}}

    {{if .Regions}}
    <div class="card">
        <h2>Interest by Region</h2>
        <table>
            <tr><th>Region</th><th>Interest</th></tr>
            {{range .Regions}}<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
            {{end}}
        </table>
    </div>
    {{end}}

    <div class="card">
        <h2>Trend Insights</h2>
        <div class="outcome">{{.Insight.Outcome}}</div>
        <div class="markdown-content">{{.Insight.Text}}</div>
    </div>

    <div class="card">
        <h2>Campaign Report</h2>
        <div class="outcome">{{.Report.Outcome}}</div>
        <div class="markdown-content">{{.Report.Text}}</div>
    </div>
</div>
<script>
    document.querySelectorAll('.markdown-content').forEach(el => {
        el.innerHTML = marked.parse(el.textContent);
    });
</script>
</body>
</html>
`
