package series

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
)

// Normalize 把数据源的嵌套记录展开为按日期升序的序列。
// 每个日期的 values 展开为多行；有多个值时只保留 keyword 对应的值（未标注 query 的值保留），
// 无法解析或没有匹配的值记为 0，无法解析日期的记录被丢弃。同一时刻出现多次时后写入者覆盖前者。
func Normalize(payload *trends.TimelinePayload, keyword string) []dm.TimeSeriesPoint {
	if payload.Empty() {
		return []dm.TimeSeriesPoint{}
	}

	byDate := make(map[time.Time]int, len(payload.Timeline))
	for _, entry := range payload.Timeline {
		date, ok := parseDate(entry)
		if !ok {
			continue
		}
		byDate[date] = 0
		for _, v := range entry.Values {
			if len(entry.Values) > 1 && v.Query != "" && keyword != "" && !strings.EqualFold(v.Query, keyword) {
				continue
			}
			byDate[date] = coerceValue(v.Value)
		}
	}

	points := make([]dm.TimeSeriesPoint, 0, len(byDate))
	for date, value := range byDate {
		points = append(points, dm.TimeSeriesPoint{Date: date, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// NormalizeRegions 地区代码 -> 热度，缺少代码时使用地区名
func NormalizeRegions(payload *trends.RegionPayload) map[string]int {
	out := make(map[string]int)
	if payload.Empty() {
		return out
	}
	for _, r := range payload.Regions {
		key := strings.TrimSpace(r.Geo)
		if key == "" {
			key = strings.TrimSpace(r.Location)
		}
		if key == "" {
			continue
		}
		out[key] = coerceValue(r.Value)
	}
	return out
}

// coerceValue 数字或数字字符串转为非负整数，其余情况为 0
func coerceValue(raw json.RawMessage) int {
	f, ok := parseNumber(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func parseNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return f, err == nil
}

// parseDate 优先使用 unix 时间戳，其次解析日期文本；结果统一为 UTC，保证同一时刻只对应一个 key
func parseDate(entry trends.TimelineEntry) (time.Time, bool) {
	if ts, ok := parseNumber(entry.Timestamp); ok && ts > 0 {
		return time.Unix(int64(ts), 0).UTC(), true
	}

	text := strings.TrimSpace(entry.Date)
	if text == "" {
		return time.Time{}, false
	}
	// 周粒度的区间，例如 "Sep 29 – Oct 5, 2024"，取区间起点
	if start, ok := rangeStart(text); ok {
		text = start
	}
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func rangeStart(text string) (string, bool) {
	for _, sep := range []string{"–", "—", " - "} {
		left, right, found := strings.Cut(text, sep)
		if !found {
			continue
		}
		left = strings.TrimSpace(left)
		if strings.Contains(left, ",") {
			return left, true
		}
		// 起点缺少年份时借用终点的年份
		if i := strings.LastIndex(right, ","); i >= 0 {
			return left + "," + right[i+1:], true
		}
		return left, true
	}
	return "", false
}

// DateLayout 小时级数据保留时分，否则只显示日期
func DateLayout(points []dm.TimeSeriesPoint) string {
	for _, p := range points {
		h, m, s := p.Date.Clock()
		if h != 0 || m != 0 || s != 0 {
			return "2006-01-02 15:04"
		}
	}
	return time.DateOnly
}
