package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultMaxAttempts    = 5
	DefaultBackoffSeconds = 60
	DefaultMaxTokens      = 1024
	DefaultSeed           = 1024
	DefaultInsightModel   = "gpt-4"
	DefaultReportModel    = "gpt-4o"
	DefaultProvider       = "serpapi"
	DefaultServerAddr     = ":8000"
)

// Config 项目配置结构体
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Provider ProviderConfig `yaml:"provider"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Regions  RegionsConfig  `yaml:"regions"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIKey       string `yaml:"api_key"`
	InsightModel string `yaml:"insight_model"`
	ReportModel  string `yaml:"report_model"`
	MaxTokens    int    `yaml:"max_tokens"`
	Seed         int    `yaml:"seed"`
	Timeout      int    `yaml:"timeout"` // 秒
}

// ProviderConfig 趋势数据源配置
type ProviderConfig struct {
	Name    string        `yaml:"name"` // serpapi or fixture
	SerpAPI SerpAPIConfig `yaml:"serpapi"`
	Fixture FixtureConfig `yaml:"fixture"`
}

// SerpAPIConfig SerpApi 配置
type SerpAPIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// FixtureConfig 本地数据文件配置
type FixtureConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig 重试配置
type FetchConfig struct {
	MaxAttempts    int `yaml:"max_attempts"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

// Backoff 两次尝试之间的固定等待，负数表示不等待
func (f FetchConfig) Backoff() time.Duration {
	if f.BackoffSeconds < 0 {
		return 0
	}
	return time.Duration(f.BackoffSeconds) * time.Second
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// RegionsConfig 国家代码表配置，为空时使用内置表
type RegionsConfig struct {
	File string `yaml:"file"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadEnv 加载 .env 文件中的密钥，文件不存在时忽略
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv 环境变量覆盖密钥类配置
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SERPAPI_API_KEY"); v != "" {
		c.Provider.SerpAPI.APIKey = v
	}
}

// ApplyDefaults 填充缺省值
func (c *Config) ApplyDefaults() {
	if c.LLM.InsightModel == "" {
		c.LLM.InsightModel = DefaultInsightModel
	}
	if c.LLM.ReportModel == "" {
		c.LLM.ReportModel = DefaultReportModel
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.LLM.Seed == 0 {
		c.LLM.Seed = DefaultSeed
	}
	if c.Provider.Name == "" {
		c.Provider.Name = DefaultProvider
	}
	if c.Fetch.MaxAttempts <= 0 {
		c.Fetch.MaxAttempts = DefaultMaxAttempts
	}
	if c.Fetch.BackoffSeconds == 0 {
		c.Fetch.BackoffSeconds = DefaultBackoffSeconds
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate 检查必填项，包括 LLM 密钥
func (c *Config) Validate() error {
	var errs []error
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm.api_key is required"))
	}
	errs = append(errs, c.ValidateProvider())
	return errors.Join(errs...)
}

// ValidateProvider 只检查数据源配置，不调用 LLM 时使用
func (c *Config) ValidateProvider() error {
	switch c.Provider.Name {
	case "serpapi":
		if c.Provider.SerpAPI.APIKey == "" {
			return errors.New("provider.serpapi.api_key is required")
		}
	case "fixture":
		if c.Provider.Fixture.Path == "" {
			return errors.New("provider.fixture.path is required")
		}
	default:
		return fmt.Errorf("unknown provider: %s", c.Provider.Name)
	}
	return nil
}
