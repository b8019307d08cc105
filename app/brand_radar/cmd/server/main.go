package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/brand_radar/app/brand_radar/internal/server"
	"github.com/iWorld-y/brand_radar/app/brand_radar/internal/service"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/config"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/engine"
	brLogger "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "brand_radar"
	// Version 服务版本号
	Version string
	// flagconf 配置文件路径
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/brand_radar/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(logger)

	if err := config.LoadEnv(); err != nil {
		helper.Warnf("load .env failed: %v", err)
	}
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		helper.Fatalf("load config failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		helper.Fatalf("invalid config: %v", err)
	}

	if err := brLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("init brand_radar logger failed: %v", err)
		_ = brLogger.InitLogger("info", "") // 降级为仅控制台输出
	}

	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		helper.Fatalf("init engine failed: %v", err)
	}

	svc := service.NewRadarService(eng, logger)
	app := newApp(logger, server.NewHTTPServer(cfg.Server, svc, logger))
	if err := app.Run(); err != nil {
		panic(err)
	}
}
