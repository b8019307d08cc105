package trends

import (
	"context"
	"encoding/json"
)

// Provider 定义趋势数据源接口
type Provider interface {
	// InterestOverTime 获取热度时间序列
	InterestOverTime(ctx context.Context, q *Query) (*TimelinePayload, error)
	// InterestByRegion 获取按地区划分的热度
	InterestByRegion(ctx context.Context, q *Query) (*RegionPayload, error)
}

// Query 构建好的查询参数
type Query struct {
	Keywords  []string
	Timeframe string // provider token, e.g. "today 3-m"
	Geo       string // 空字符串表示全球
}

// BuildQuery 由单个关键词与筛选条件构造查询
func BuildQuery(keyword, timeframe, geo string) *Query {
	return &Query{
		Keywords:  []string{keyword},
		Timeframe: timeframe,
		Geo:       geo,
	}
}

// Keyword 返回首个关键词
func (q *Query) Keyword() string {
	if q == nil || len(q.Keywords) == 0 {
		return ""
	}
	return q.Keywords[0]
}

// TimelinePayload 时间序列原始数据
type TimelinePayload struct {
	Timeline []TimelineEntry `json:"timeline_data"`
}

// TimelineEntry 单个日期的原始记录，values 即使只有一个关键词也是列表
type TimelineEntry struct {
	Date      string          `json:"date"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Values    []TimelineValue `json:"values"`
}

// TimelineValue 某个关键词在该日期的热度
type TimelineValue struct {
	Query string          `json:"query"`
	Value json.RawMessage `json:"value"` // 数字或字符串，例如 "<1"
}

// Empty 是否没有数据
func (p *TimelinePayload) Empty() bool {
	return p == nil || len(p.Timeline) == 0
}

// RegionPayload 地区热度原始数据
type RegionPayload struct {
	Regions []RegionEntry `json:"interest_by_region"`
}

// RegionEntry 单个地区的热度
type RegionEntry struct {
	Geo      string          `json:"geo"`
	Location string          `json:"location"`
	Value    json.RawMessage `json:"value"`
}

// Empty 是否没有数据
func (p *RegionPayload) Empty() bool {
	return p == nil || len(p.Regions) == 0
}
