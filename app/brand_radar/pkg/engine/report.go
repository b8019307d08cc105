package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/llm"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/lookup"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/status"
)

// ReportSections 报告要求包含的六个章节
var ReportSections = []string{
	"Overall Sentiment Analysis",
	"Key Discussion Themes",
	"Potential Areas of Improvement",
	"Campaign Suggestions Based on Positive Sentiment Areas",
	"Risk Areas Based on Negative Sentiment",
	"Competitor Comparison",
}

const reportSystemTemplate = `Generate a comprehensive campaign report for %s based on sentiment analysis of discussions, reviews, and other relevant data from %s to %s for %s.
The report should include the following sections:

Overall Sentiment Analysis: Provide an overview of the general sentiment toward the brand during this period, categorizing it as positive, negative, or neutral. Highlight the key factors contributing to these sentiments.

Key Discussion Themes: Identify the major themes and topics that were discussed regarding the brand, including any trending keywords, customer feedback, or major points of interest during the period.

Potential Areas of Improvement: Highlight any areas where sentiment was negative or neutral, offering actionable insights on how the brand can improve in these aspects to strengthen its presence or image.

Campaign Suggestions Based on Positive Sentiment Areas: Suggest specific strategies or actions that can capitalize on areas with strong positive sentiment, such as highlighting successful product features, promoting positive reviews, or engaging in effective messaging.

Risk Areas Based on Negative Sentiment: Identify risk areas where the brand may be facing negative sentiment and propose strategies to address or mitigate these risks, such as handling complaints, addressing product/service issues, or improving customer support.

Competitor Comparison (if available): If competitor sentiment data is available, provide a comparison of how the brand stacks up against competitors in terms of customer perception, sentiment, and key discussion points.

Summarize these findings in a clear, concise report that includes actionable recommendations to optimize the brand's campaign performance.`

const reportUserPrefix = "Provide the campaign summary based on data given:\n"

// ReportRequest 第二阶段参数
type ReportRequest struct {
	Insight   dm.Insight
	Brand     string
	Timeframe string // 展示文案或数据源参数
	Region    string // 地区代码，为空表示全球
	Sink      status.Sink
}

// Generate 第二阶段：由洞察生成活动报告。洞察不可用时直接返回，不调用 LLM。
func (e *Engine) Generate(ctx context.Context, req ReportRequest) dm.Report {
	if !req.Insight.Outcome.OK() {
		logger.Log.Infof("洞察不可用 (%s)，跳过报告生成", req.Insight.Outcome)
		return dm.Report{Text: dm.ReportNotGenerated, Outcome: dm.OutcomeSkipped}
	}
	return e.generate(ctx, req.Insight.Text, req)
}

// GenerateText 按洞察文本生成报告，只有文本恰好为 NoAnswer 时跳过
func (e *Engine) GenerateText(ctx context.Context, text, brand, timeframe, region string) dm.Report {
	if text == dm.NoAnswer {
		return dm.Report{Text: dm.ReportNotGenerated, Outcome: dm.OutcomeSkipped}
	}
	return e.generate(ctx, text, ReportRequest{Brand: brand, Timeframe: timeframe, Region: region})
}

func (e *Engine) generate(ctx context.Context, insight string, req ReportRequest) dm.Report {
	sink := e.sinkFor(req.Sink)

	tf, err := lookup.ParseTimeframe(req.Timeframe)
	if err != nil {
		logger.Log.Warnf("未知时间范围 %q，使用默认 %s", req.Timeframe, lookup.DefaultTimeframe.Label)
		tf = lookup.DefaultTimeframe
	}
	start, end := tf.DateStrings(e.now())
	region := e.regionName(req.Region)

	text, err := e.complete(ctx, llm.Prompt{
		System:    fmt.Sprintf(reportSystemTemplate, req.Brand, start, end, region),
		User:      reportUserPrefix + insight,
		MaxTokens: e.llmCfg.MaxTokens,
		Model:     e.llmCfg.ReportModel,
	})
	if err != nil {
		logger.Log.Errorf("活动报告生成失败 [%s]: %v", req.Brand, err)
		sink.Notify(fmt.Sprintf("Inside Generate Campaign Report Exception : %v", err))
		return dm.Report{Text: dm.ReportFailed, Outcome: dm.OutcomeFailed}
	}

	if missing := MissingSections(text); len(missing) > 0 {
		logger.Log.Warnf("报告缺少章节 [%s]: %s", req.Brand, strings.Join(missing, ", "))
	}
	return dm.Report{Text: text, Outcome: dm.OutcomeSuccess}
}

func (e *Engine) regionName(code string) string {
	if e.regions != nil {
		return e.regions.DisplayName(code)
	}
	if code == "" {
		return lookup.GlobalName
	}
	return code
}

// Sections 返回报告文本中出现的章节标题，按 ReportSections 顺序，不区分大小写
func Sections(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, s := range ReportSections {
		if strings.Contains(lower, strings.ToLower(s)) {
			found = append(found, s)
		}
	}
	return found
}

// MissingSections 返回报告文本中缺失的章节标题
func MissingSections(text string) []string {
	present := make(map[string]bool, len(ReportSections))
	for _, s := range Sections(text) {
		present[s] = true
	}
	var missing []string
	for _, s := range ReportSections {
		if !present[s] {
			missing = append(missing, s)
		}
	}
	return missing
}
