package lookup

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe 可选的时间窗口
type Timeframe struct {
	Label string // 展示文案，例如 "90 Days"
	Token string // 数据源参数，例如 "today 3-m"
	Days  int
}

// Timeframes 全部可选时间窗口，按天数升序
var Timeframes = []Timeframe{
	{Label: "7 Days", Token: "now 7-d", Days: 7},
	{Label: "15 Days", Token: "now 15-d", Days: 15},
	{Label: "30 Days", Token: "today 1-m", Days: 30},
	{Label: "60 Days", Token: "today 2-m", Days: 60},
	{Label: "90 Days", Token: "today 3-m", Days: 90},
}

// DefaultTimeframe 默认 90 天
var DefaultTimeframe = Timeframes[len(Timeframes)-1]

// ParseTimeframe 接受展示文案（不区分大小写）或数据源参数，空字符串返回默认值
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTimeframe, nil
	}
	for _, tf := range Timeframes {
		if strings.EqualFold(s, tf.Label) || s == tf.Token {
			return tf, nil
		}
	}
	return Timeframe{}, fmt.Errorf("unknown timeframe: %q", s)
}

// DateRange 返回 (start, end)，end 为 now
func (tf Timeframe) DateRange(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -tf.Days), now
}

// DateStrings 返回 YYYY-MM-DD 格式的起止日期
func (tf Timeframe) DateStrings(now time.Time) (string, string) {
	start, end := tf.DateRange(now)
	return start.Format(time.DateOnly), end.Format(time.DateOnly)
}
