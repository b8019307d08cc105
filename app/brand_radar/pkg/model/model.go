package model

import (
	"encoding/json"
	"math"
	"time"
)

// 对外可见的固定文案。报告阶段的短路判断依赖这些字符串的精确值。
const (
	NoAnswer           = "No Answer!!!"
	InsightUnavailable = "analysis unavailable"
	ReportNotGenerated = "Campaign Report Can't be generated for empty analysis."
	ReportFailed       = "Not able to generate campaign reports."
	EmptyKeyword       = "Please enter some text to analyze."
)

// Outcome 标记一个阶段的结果类型
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// OK 是否成功
func (o Outcome) OK() bool { return o == OutcomeSuccess }

// TimeSeriesPoint 单个日期的热度值
type TimeSeriesPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// Statistics 热度统计
type Statistics struct {
	Mean       float64 `json:"mean"`
	Max        float64 `json:"max"`
	Min        float64 `json:"min"`
	Volatility float64 `json:"volatility"` // 样本标准差，少于两个点时为 NaN
}

// HasVolatility 波动率是否有定义
func (s Statistics) HasVolatility() bool { return !math.IsNaN(s.Volatility) }

// MarshalJSON NaN 无法编码为 JSON，未定义的波动率输出为 null
func (s Statistics) MarshalJSON() ([]byte, error) {
	out := struct {
		Mean       float64  `json:"mean"`
		Max        float64  `json:"max"`
		Min        float64  `json:"min"`
		Volatility *float64 `json:"volatility"`
	}{Mean: s.Mean, Max: s.Max, Min: s.Min}
	if s.HasVolatility() {
		v := s.Volatility
		out.Volatility = &v
	}
	return json.Marshal(out)
}

// Insight 第一阶段 LLM 的输出
type Insight struct {
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
}

// AnalysisRecord 一次分析的完整结果
type AnalysisRecord struct {
	Timestamp        time.Time         `json:"timestamp"`
	Keyword          string            `json:"keyword"`
	Timeframe        string            `json:"timeframe"`
	Geo              string            `json:"geo"`
	InterestSeries   []TimeSeriesPoint `json:"interest_over_time,omitempty"`
	Statistics       *Statistics       `json:"statistics,omitempty"`
	RegionalInterest map[string]int    `json:"regional_interest,omitempty"`
	Insight          Insight           `json:"gpt_insights"`

	SeriesOutcome   Outcome `json:"series_outcome"`
	RegionalOutcome Outcome `json:"regional_outcome"`
}

// InsightText 兼容旧接口：没有洞察时返回 NoAnswer
func (r *AnalysisRecord) InsightText() string {
	if r == nil || r.Insight.Text == "" {
		return NoAnswer
	}
	return r.Insight.Text
}

// Report 第二阶段生成的活动报告
type Report struct {
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
}
