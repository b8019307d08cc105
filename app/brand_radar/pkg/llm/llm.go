package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/config"
)

// ErrEmptyResponse 模型没有返回消息
var ErrEmptyResponse = errors.New("llm returned no message")

// Prompt 单次补全请求
type Prompt struct {
	System    string
	User      string
	MaxTokens int
	Model     string // 为空时使用模型初始化时的默认值
}

// Completer 语言模型补全接口，每个阶段调用一次，不使用流式输出
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// ChatCompleter 基于 eino ChatModel 的 Completer 实现
type ChatCompleter struct {
	chatModel model.BaseChatModel
}

// NewChatCompleter 包装已有的 eino 模型
func NewChatCompleter(cm model.BaseChatModel) *ChatCompleter {
	return &ChatCompleter{chatModel: cm}
}

// NewOpenAI 初始化 OpenAI 兼容的 ChatModel，seed 在初始化时固定
func NewOpenAI(ctx context.Context, cfg config.LLMConfig) (*ChatCompleter, error) {
	seed := cfg.Seed
	maxTokens := cfg.MaxTokens

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Model:     cfg.InsightModel,
		MaxTokens: &maxTokens,
		Seed:      &seed,
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatCompleter(chatModel), nil
}

// Complete implements Completer
func (c *ChatCompleter) Complete(ctx context.Context, p Prompt) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: p.System},
		{Role: schema.User, Content: p.User},
	}

	var opts []model.Option
	if p.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(p.MaxTokens))
	}
	if p.Model != "" {
		opts = append(opts, model.WithModel(p.Model))
	}

	resp, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Content), nil
}
