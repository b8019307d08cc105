package factory

import (
	"fmt"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/config"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/fixture"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/serpapi"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
)

// NewProvider 根据配置创建趋势数据源
func NewProvider(cfg *config.Config) (trends.Provider, error) {
	provider := cfg.Provider.Name
	if provider == "" {
		// 默认回退逻辑：有本地文件则使用 fixture，否则使用 serpapi
		if cfg.Provider.Fixture.Path != "" && cfg.Provider.SerpAPI.APIKey == "" {
			provider = "fixture"
		} else {
			provider = config.DefaultProvider
		}
	}

	switch provider {
	case "serpapi":
		p := cfg.Provider.SerpAPI
		if p.APIKey == "" {
			return nil, fmt.Errorf("serpapi api key is missing")
		}
		return serpapi.NewClient(p.APIKey, p.BaseURL, p.Timeout), nil

	case "fixture":
		if cfg.Provider.Fixture.Path == "" {
			return nil, fmt.Errorf("fixture path is missing")
		}
		return fixture.NewClient(cfg.Provider.Fixture.Path), nil

	default:
		return nil, fmt.Errorf("unknown trends provider: %s", provider)
	}
}
