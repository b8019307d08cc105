package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/engine"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/lookup"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/status"
)

// Runner 执行一次完整分析
type Runner interface {
	Run(ctx context.Context, req engine.RunRequest) (*engine.Result, error)
	Regions() *lookup.Regions
}

// RadarService 品牌雷达 HTTP 接口
type RadarService struct {
	eng Runner
	log *log.Helper
}

// NewRadarService 创建服务实例
func NewRadarService(eng Runner, logger log.Logger) *RadarService {
	return &RadarService{eng: eng, log: log.NewHelper(logger)}
}

// AnalyzeRequest POST /v1/analyze 请求体
type AnalyzeRequest struct {
	Keyword   string `json:"keyword"`
	Timeframe string `json:"timeframe"`
	Region    string `json:"region"`
	NoInsight bool   `json:"no_insight"`
}

// AnalyzeReply 分析结果与过程中的状态消息
type AnalyzeReply struct {
	RequestID string             `json:"request_id"`
	Analysis  *dm.AnalysisRecord `json:"analysis"`
	Report    dm.Report          `json:"report"`
	Messages  []string           `json:"messages,omitempty"`
}

// Analyze 处理分析请求
func (s *RadarService) Analyze(ctx http.Context) error {
	var req AnalyzeRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("INVALID_REQUEST", err.Error())
	}

	id := uuid.NewString()
	ctx.Response().Header().Set("X-Request-Id", id)
	rec := &status.Recorder{}
	sink := status.Tee(rec, status.NewLogSink(logger.Log, logrus.Fields{"request_id": id}))

	s.log.WithContext(ctx).Infof("analyze request %s: keyword=%q timeframe=%q region=%q", id, req.Keyword, req.Timeframe, req.Region)
	res, err := s.eng.Run(ctx, engine.RunRequest{
		Keyword:        req.Keyword,
		Timeframe:      req.Timeframe,
		Geo:            req.Region,
		IncludeInsight: !req.NoInsight,
		Sink:           sink,
	})
	if err != nil {
		if errors.Is(err, engine.ErrEmptyKeyword) {
			return errors.BadRequest("EMPTY_KEYWORD", err.Error())
		}
		return errors.BadRequest("INVALID_ARGUMENT", err.Error())
	}

	return ctx.JSON(200, &AnalyzeReply{
		RequestID: id,
		Analysis:  res.Analysis,
		Report:    res.Report,
		Messages:  rec.Messages(),
	})
}

// Region 地区选项
type Region struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ListRegions 返回可选地区，Global 在首位
func (s *RadarService) ListRegions(ctx http.Context) error {
	regions := s.eng.Regions()
	if regions == nil {
		return errors.ServiceUnavailable("REGIONS_UNAVAILABLE", "country codes not loaded")
	}
	names := regions.Names()
	list := make([]Region, 0, len(names))
	for _, name := range names {
		code, _ := regions.Code(name)
		list = append(list, Region{Name: name, Code: code})
	}
	return ctx.JSON(200, map[string]any{"regions": list})
}

// Timeframe 时间范围选项
type Timeframe struct {
	Label string `json:"label"`
	Token string `json:"token"`
	Days  int    `json:"days"`
}

// ListTimeframes 返回可选时间范围
func (s *RadarService) ListTimeframes(ctx http.Context) error {
	list := make([]Timeframe, 0, len(lookup.Timeframes))
	for _, tf := range lookup.Timeframes {
		list = append(list, Timeframe{Label: tf.Label, Token: tf.Token, Days: tf.Days})
	}
	return ctx.JSON(200, map[string]any{
		"timeframes": list,
		"default":    lookup.DefaultTimeframe.Label,
	})
}
