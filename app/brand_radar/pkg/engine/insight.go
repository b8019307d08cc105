package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/llm"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/series"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/status"
)

const (
	insightSystemPrompt = "You are a trends analysis expert. Analyze the following Google Trends data and provide insights."
	insightUserPrefix   = "Analyze these Google Trends patterns and provide key insights:\n"
)

// Digest 将时间序列压缩为固定格式的文本摘要，长度与序列长度无关
func Digest(keyword string, points []dm.TimeSeriesPoint) string {
	if len(points) == 0 {
		return ""
	}
	layout := series.DateLayout(points)
	first, last := points[0].Date, points[len(points)-1].Date

	var sb strings.Builder
	fmt.Fprintf(&sb, "Trends data for keywords %s:\n", keyword)
	fmt.Fprintf(&sb, "Time period: %s to %s\n", first.Format(layout), last.Format(layout))
	if stats, ok := series.Compute(points); ok {
		fmt.Fprintf(&sb, "Average interest scores: %s=%.2f\n", keyword, stats.Mean)
	}
	if i := series.PeakIndex(points); i >= 0 {
		fmt.Fprintf(&sb, "Peak interest points: %s=%s (%d)\n", keyword, points[i].Date.Format(layout), points[i].Value)
	}
	return sb.String()
}

// Summarize 第一阶段：根据摘要生成趋势洞察，失败不重试
func (e *Engine) Summarize(ctx context.Context, digest string) dm.Insight {
	return e.summarize(ctx, digest, e.sinkFor(nil))
}

func (e *Engine) summarize(ctx context.Context, digest string, sink status.Sink) dm.Insight {
	text, err := e.complete(ctx, llm.Prompt{
		System:    insightSystemPrompt,
		User:      insightUserPrefix + digest,
		MaxTokens: e.llmCfg.MaxTokens,
		Model:     e.llmCfg.InsightModel,
	})
	if err != nil {
		logger.Log.Errorf("趋势洞察生成失败: %v", err)
		sink.Notify(fmt.Sprintf("Error in GPT analysis: %v", err))
		return dm.Insight{Text: dm.InsightUnavailable, Outcome: dm.OutcomeFailed}
	}
	if text == "" {
		logger.Log.Warn("趋势洞察为空")
		return dm.Insight{Text: dm.NoAnswer, Outcome: dm.OutcomeEmpty}
	}
	return dm.Insight{Text: text, Outcome: dm.OutcomeSuccess}
}

// complete 调用 LLM，panic 转为 error
func (e *Engine) complete(ctx context.Context, p llm.Prompt) (text string, err error) {
	if e.completer == nil {
		return "", fmt.Errorf("llm completer not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("llm panic: %v", r)
		}
	}()
	return e.completer.Complete(ctx, p)
}
