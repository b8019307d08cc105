package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iWorld-y/brand_radar/app/brand_radar/internal/render"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/config"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/engine"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/status"
)

func main() {
	var (
		flagconf  = flag.String("conf", "app/brand_radar/configs/config.yaml", "config path, eg: -conf config.yaml")
		keyword   = flag.String("keyword", "", "brand or keyword to analyze")
		timeframe = flag.String("timeframe", "90 Days", "7 Days | 15 Days | 30 Days | 60 Days | 90 Days")
		region    = flag.String("region", "", "region name or code, empty for Global")
		noInsight = flag.Bool("no-insight", false, "skip the language model stages; llm.api_key is then optional")
		out       = flag.String("out", "index.html", "html report path, empty to skip")
	)
	flag.Parse()

	// 1. 加载配置
	if err := config.LoadEnv(); err != nil {
		log.Printf("加载 .env 失败: %v", err)
	}
	cfg, err := config.LoadConfig(*flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	validate := cfg.Validate
	if *noInsight {
		validate = cfg.ValidateProvider
	}
	if err := validate(); err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动品牌雷达...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 初始化引擎
	eng, err := engine.NewEngine(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("初始化引擎失败: %v", err)
	}

	// 4. 分析并生成报告
	sink := status.Func(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
	res, err := eng.Run(ctx, engine.RunRequest{
		Keyword:        *keyword,
		Timeframe:      *timeframe,
		Geo:            *region,
		IncludeInsight: !*noInsight,
		Sink:           sink,
	})
	if errors.Is(err, engine.ErrEmptyKeyword) {
		fmt.Fprintln(os.Stderr, dm.EmptyKeyword)
		os.Exit(2)
	}
	if err != nil {
		logger.Log.Fatalf("参数错误: %v", err)
	}

	printResult(res)

	// 5. 生成 HTML
	if *out != "" {
		if err := writeHTML(*out, render.NewHTMLData(res, eng.Regions(), time.Now())); err != nil {
			logger.Log.Fatalf("生成 HTML 失败: %v", err)
		}
		logger.Log.Infof("✅ 品牌雷达报告生成完毕: %s", *out)
	}
}

func printResult(res *engine.Result) {
	rec := res.Analysis
	fmt.Printf("Keyword: %s\nTimeframe: %s\n", rec.Keyword, rec.Timeframe)
	if rec.Statistics != nil {
		s := rec.Statistics
		fmt.Printf("Mean: %.2f  Max: %.0f  Min: %.0f  Volatility: %.2f\n", s.Mean, s.Max, s.Min, s.Volatility)
	} else {
		fmt.Printf("No interest data (%s)\n", rec.SeriesOutcome)
	}
	fmt.Printf("\n== Insights (%s) ==\n%s\n", rec.Insight.Outcome, rec.InsightText())
	fmt.Printf("\n== Campaign Report (%s) ==\n%s\n", res.Report.Outcome, res.Report.Text)
}

func writeHTML(path string, data render.HTMLData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.HTML(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
