package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/config"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/fetch"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/llm"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/lookup"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/series"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/status"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends/factory"
)

// ErrEmptyKeyword 关键词为空，在任何请求发出前拒绝
var ErrEmptyKeyword = errors.New(dm.EmptyKeyword)

// Engine 核心处理引擎：获取趋势数据、统计、两阶段 LLM 分析
type Engine struct {
	provider  trends.Provider
	completer llm.Completer
	regions   *lookup.Regions
	fetcher   *fetch.Fetcher
	llmCfg    config.LLMConfig
	now       func() time.Time
}

// Deps 引擎依赖，测试中可直接注入替身
type Deps struct {
	Provider  trends.Provider
	Completer llm.Completer
	Regions   *lookup.Regions
	Fetcher   *fetch.Fetcher
	LLM       config.LLMConfig
	Now       func() time.Time
}

// New 由依赖创建引擎
func New(d Deps) *Engine {
	if d.Fetcher == nil {
		d.Fetcher = fetch.NewFetcher(fetch.DefaultMaxAttempts, fetch.DefaultBackoff, nil)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.LLM.MaxTokens <= 0 {
		d.LLM.MaxTokens = config.DefaultMaxTokens
	}
	if d.LLM.InsightModel == "" {
		d.LLM.InsightModel = config.DefaultInsightModel
	}
	if d.LLM.ReportModel == "" {
		d.LLM.ReportModel = config.DefaultReportModel
	}
	return &Engine{
		provider:  d.Provider,
		completer: d.Completer,
		regions:   d.Regions,
		fetcher:   d.Fetcher,
		llmCfg:    d.LLM,
		now:       d.Now,
	}
}

// NewEngine 根据配置创建引擎实例
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	provider, err := factory.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("趋势数据源初始化失败: %w", err)
	}

	// 未配置密钥时不创建 LLM，两个阶段会返回失败标记
	var completer llm.Completer
	if cfg.LLM.APIKey != "" {
		cc, err := llm.NewOpenAI(ctx, cfg.LLM)
		if err != nil {
			return nil, err
		}
		completer = cc
	}

	regions, err := lookup.LoadRegions(cfg.Regions.File)
	if err != nil {
		return nil, fmt.Errorf("国家代码表加载失败: %w", err)
	}

	return New(Deps{
		Provider:  provider,
		Completer: completer,
		Regions:   regions,
		Fetcher:   fetch.NewFetcher(cfg.Fetch.MaxAttempts, cfg.Fetch.Backoff(), nil),
		LLM:       cfg.LLM,
	}), nil
}

// Regions 返回国家代码表
func (e *Engine) Regions() *lookup.Regions { return e.regions }

// AnalyzeRequest 分析参数
type AnalyzeRequest struct {
	Keyword        string
	Timeframe      string // 展示文案或数据源参数，为空时默认 90 天
	Geo            string // 地区代码或名称，为空表示全球
	IncludeInsight bool
	Sink           status.Sink
}

// Analyze 获取并分析单个关键词的趋势数据。
// 时间序列与地区热度并发获取、互不影响；只有参数错误会返回 error，数据缺失通过 Outcome 体现。
func (e *Engine) Analyze(ctx context.Context, req AnalyzeRequest) (*dm.AnalysisRecord, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	tf, err := lookup.ParseTimeframe(req.Timeframe)
	if err != nil {
		return nil, err
	}
	geo, err := e.resolveGeo(req.Geo)
	if err != nil {
		return nil, err
	}
	sink := e.sinkFor(req.Sink)

	logger.Log.Infof("开始分析关键词 [%s], timeframe=%s, geo=%q", keyword, tf.Token, geo)
	record := &dm.AnalysisRecord{
		Timestamp: e.now(),
		Keyword:   keyword,
		Timeframe: tf.Token,
		Geo:       geo,
		Insight:   dm.Insight{Text: dm.NoAnswer, Outcome: dm.OutcomeEmpty},
	}

	f := *e.fetcher
	f.Sink = sink
	q := trends.BuildQuery(keyword, tf.Token, geo)

	var (
		wg       sync.WaitGroup
		points   []dm.TimeSeriesPoint
		seriesOC dm.Outcome
		regional map[string]int
		regionOC dm.Outcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		points, seriesOC = e.fetchSeries(ctx, &f, q, sink)
	}()
	go func() {
		defer wg.Done()
		regional, regionOC = e.fetchRegions(ctx, &f, q, sink)
	}()
	wg.Wait()

	record.SeriesOutcome = seriesOC
	record.RegionalOutcome = regionOC
	if len(points) > 0 {
		record.InterestSeries = points
		if stats, ok := series.Compute(points); ok {
			record.Statistics = &stats
		}
	}
	if len(regional) > 0 {
		record.RegionalInterest = regional
	}

	if req.IncludeInsight && len(points) > 0 {
		record.Insight = e.summarize(ctx, Digest(keyword, points), sink)
	}

	logger.Log.Infof("关键词 [%s] 分析完成: series=%s regional=%s insight=%s",
		keyword, record.SeriesOutcome, record.RegionalOutcome, record.Insight.Outcome)
	return record, nil
}

// fetchSeries 获取并规整时间序列；panic 被捕获并记为失败
func (e *Engine) fetchSeries(ctx context.Context, f *fetch.Fetcher, q *trends.Query, sink status.Sink) (points []dm.TimeSeriesPoint, outcome dm.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("获取时间序列异常 [%s]: %v", q.Keyword(), r)
			sink.Notify(fmt.Sprintf("Error in getting interest over time : %v", r))
			points, outcome = nil, dm.OutcomeFailed
		}
	}()

	res := fetch.Do(ctx, f, "trends", func(ctx context.Context) ([]dm.TimeSeriesPoint, error) {
		payload, err := e.provider.InterestOverTime(ctx, q)
		if err != nil {
			return nil, err
		}
		return series.Normalize(payload, q.Keyword()), nil
	}, func(p []dm.TimeSeriesPoint) bool { return len(p) == 0 })

	return res.Value, res.Outcome
}

// fetchRegions 获取地区热度；失败不影响时间序列
func (e *Engine) fetchRegions(ctx context.Context, f *fetch.Fetcher, q *trends.Query, sink status.Sink) (regional map[string]int, outcome dm.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("获取地区热度异常 [%s]: %v", q.Keyword(), r)
			sink.Notify(fmt.Sprintf("Error in getting regional interest : %v", r))
			regional, outcome = nil, dm.OutcomeFailed
		}
	}()

	res := fetch.Do(ctx, f, "regional interest", func(ctx context.Context) (map[string]int, error) {
		payload, err := e.provider.InterestByRegion(ctx, q)
		if err != nil {
			return nil, err
		}
		return series.NormalizeRegions(payload), nil
	}, func(m map[string]int) bool { return len(m) == 0 })

	return res.Value, res.Outcome
}

// RunRequest 完整流程参数
type RunRequest = AnalyzeRequest

// Result 完整流程结果
type Result struct {
	Analysis *dm.AnalysisRecord `json:"analysis"`
	Report   dm.Report          `json:"report"`
}

// Run 执行分析并生成活动报告。只有参数错误会返回 error。
func (e *Engine) Run(ctx context.Context, req RunRequest) (*Result, error) {
	record, err := e.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	report := e.Generate(ctx, ReportRequest{
		Insight:   record.Insight,
		Brand:     record.Keyword,
		Timeframe: record.Timeframe,
		Region:    record.Geo,
		Sink:      req.Sink,
	})
	return &Result{Analysis: record, Report: report}, nil
}

func (e *Engine) resolveGeo(geo string) (string, error) {
	geo = strings.TrimSpace(geo)
	if e.regions == nil {
		return strings.ToUpper(geo), nil
	}
	return e.regions.Resolve(geo)
}

func (e *Engine) sinkFor(s status.Sink) status.Sink {
	if s != nil {
		return s
	}
	return status.Func(func(msg string) { logger.Log.Info(msg) })
}
