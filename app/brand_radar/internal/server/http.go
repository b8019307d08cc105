package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/brand_radar/app/brand_radar/internal/service"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/config"
)

// defaultTimeout 一次分析可能经历多轮固定间隔重试
const defaultTimeout = 15 * time.Minute

// NewHTTPServer 注册品牌雷达的 HTTP 路由
func NewHTTPServer(c config.ServerConfig, s *service.RadarService, logger log.Logger) *http.Server {
	timeout := defaultTimeout
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			timeout = d
		} else {
			log.NewHelper(logger).Warnf("invalid server timeout %q, using %s", c.Timeout, defaultTimeout)
		}
	}

	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Timeout(timeout),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/v1")
	r.POST("/analyze", s.Analyze)
	r.GET("/regions", s.ListRegions)
	r.GET("/timeframes", s.ListTimeframes)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return srv
}
