package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
)

// Client 从本地 JSON 文件读取趋势数据，格式与 SerpApi 响应一致，用于离线演示与联调
type Client struct {
	path string
}

// NewClient 创建一个新的本地数据客户端
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Ensure Client implements trends.Provider
var _ trends.Provider = (*Client)(nil)

// Document 文件结构
type Document struct {
	InterestOverTime *trends.TimelinePayload `json:"interest_over_time"`
	InterestByRegion []trends.RegionEntry    `json:"interest_by_region"`
}

// InterestOverTime implements trends.Provider
func (c *Client) InterestOverTime(ctx context.Context, q *trends.Query) (*trends.TimelinePayload, error) {
	doc, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.InterestOverTime == nil {
		return &trends.TimelinePayload{}, nil
	}
	return doc.InterestOverTime, nil
}

// InterestByRegion implements trends.Provider
func (c *Client) InterestByRegion(ctx context.Context, q *trends.Query) (*trends.RegionPayload, error) {
	doc, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return &trends.RegionPayload{Regions: doc.InterestByRegion}, nil
}

// load 每次调用都重新读取，便于修改文件后直接重跑
func (c *Client) load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", c.path, err)
	}
	return &doc, nil
}
