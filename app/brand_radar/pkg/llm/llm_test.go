package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatModel 记录最后一次调用
type fakeChatModel struct {
	reply    *schema.Message
	err      error
	messages []*schema.Message
	options  *model.Options
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.messages = input
	m.options = model.GetCommonOptions(&model.Options{}, opts...)
	return m.reply, m.err
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func TestChatCompleter_Complete(t *testing.T) {
	fake := &fakeChatModel{reply: &schema.Message{Role: schema.Assistant, Content: "  insight text \n"}}
	c := NewChatCompleter(fake)

	out, err := c.Complete(context.Background(), Prompt{
		System:    "You are a trends analysis expert.",
		User:      "Analyze these Google Trends patterns",
		MaxTokens: 1024,
		Model:     "gpt-4o",
	})
	require.NoError(t, err)
	assert.Equal(t, "insight text", out)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, schema.System, fake.messages[0].Role)
	assert.Equal(t, "You are a trends analysis expert.", fake.messages[0].Content)
	assert.Equal(t, schema.User, fake.messages[1].Role)

	require.NotNil(t, fake.options.MaxTokens)
	assert.Equal(t, 1024, *fake.options.MaxTokens)
	require.NotNil(t, fake.options.Model)
	assert.Equal(t, "gpt-4o", *fake.options.Model)
}

func TestChatCompleter_NoOverridesWhenUnset(t *testing.T) {
	fake := &fakeChatModel{reply: &schema.Message{Content: "ok"}}
	_, err := NewChatCompleter(fake).Complete(context.Background(), Prompt{System: "s", User: "u"})
	require.NoError(t, err)
	assert.Nil(t, fake.options.MaxTokens)
	assert.Nil(t, fake.options.Model)
}

func TestChatCompleter_Errors(t *testing.T) {
	_, err := NewChatCompleter(&fakeChatModel{err: errors.New("503")}).Complete(context.Background(), Prompt{})
	assert.EqualError(t, err, "503")

	_, err = NewChatCompleter(&fakeChatModel{}).Complete(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
