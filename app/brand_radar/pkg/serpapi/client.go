package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/trends"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// data_type 取值
const (
	dataTypeTimeseries = "TIMESERIES"
	dataTypeGeoMap     = "GEO_MAP_0"
)

// Client SerpApi google_trends 引擎客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 SerpApi 客户端，timeout 单位为秒
func NewClient(apiKey, baseURL string, timeout int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements trends.Provider
var _ trends.Provider = (*Client)(nil)

// errorResponse 业务错误，HTTP 状态码可能仍为 200
type errorResponse struct {
	Error string `json:"error"`
}

type timeseriesResponse struct {
	errorResponse
	InterestOverTime *trends.TimelinePayload `json:"interest_over_time"`
}

type geoMapResponse struct {
	errorResponse
	InterestByRegion []trends.RegionEntry `json:"interest_by_region"`
}

// InterestOverTime implements trends.Provider
func (c *Client) InterestOverTime(ctx context.Context, q *trends.Query) (*trends.TimelinePayload, error) {
	var resp timeseriesResponse
	if err := c.do(ctx, q, dataTypeTimeseries, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		if isNoResults(resp.Error) {
			return &trends.TimelinePayload{}, nil
		}
		return nil, fmt.Errorf("serpapi error: %s", resp.Error)
	}
	if resp.InterestOverTime == nil {
		return &trends.TimelinePayload{}, nil
	}
	return resp.InterestOverTime, nil
}

// InterestByRegion implements trends.Provider
func (c *Client) InterestByRegion(ctx context.Context, q *trends.Query) (*trends.RegionPayload, error) {
	var resp geoMapResponse
	if err := c.do(ctx, q, dataTypeGeoMap, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		if isNoResults(resp.Error) {
			return &trends.RegionPayload{}, nil
		}
		return nil, fmt.Errorf("serpapi error: %s", resp.Error)
	}
	return &trends.RegionPayload{Regions: resp.InterestByRegion}, nil
}

// isNoResults "没有数据" 不是传输错误
func isNoResults(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "hasn't returned any results") || strings.Contains(msg, "no results")
}

func (c *Client) do(ctx context.Context, q *trends.Query, dataType string, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	params := u.Query()
	params.Set("engine", "google_trends")
	params.Set("api_key", c.apiKey)
	params.Set("q", strings.Join(q.Keywords, ","))
	params.Set("data_type", dataType)
	params.Set("date", q.Timeframe)
	params.Set("cat", "0")
	if q.Geo != "" {
		params.Set("geo", q.Geo)
	}
	u.RawQuery = params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && isNoResults(e.Error) {
			return json.Unmarshal(body, out)
		}
		return fmt.Errorf("serpapi error (status %d): %s", res.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response failed: %w", err)
	}
	return nil
}
