package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/logger"
	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
	"github.com/iWorld-y/brand_radar/app/brand_radar/pkg/status"
)

// 默认重试参数
const (
	DefaultMaxAttempts = 5
	DefaultBackoff     = 60 * time.Second
)

// ErrNoData 数据源返回了空结果
var ErrNoData = errors.New("no data returned")

// Fetcher 对单次数据源调用做有限次重试，两次尝试之间固定等待 Backoff。
// 并发安全：每次 Do 使用独立的退避状态与计时器。
type Fetcher struct {
	MaxAttempts int
	Backoff     time.Duration
	Sink        status.Sink
	// NewTimer 为空时使用真实计时器，测试中可替换以记录等待
	NewTimer func() backoff.Timer
}

// NewFetcher 创建 Fetcher，非正数参数使用默认值
func NewFetcher(maxAttempts int, wait time.Duration, sink status.Sink) *Fetcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if wait < 0 {
		wait = 0
	}
	if sink == nil {
		sink = status.Discard
	}
	return &Fetcher{MaxAttempts: maxAttempts, Backoff: wait, Sink: sink}
}

// Result 一次带重试的获取结果
type Result[T any] struct {
	Value    T
	Outcome  dm.Outcome
	Attempts int
	Err      error // 最后一次失败的原因，成功时为 nil
}

// Do 执行 op 直到返回非空结果或用尽次数。
// 错误、panic 与空结果都算一次失败；用尽后返回零值而不是错误。
func Do[T any](ctx context.Context, f *Fetcher, name string, op func(ctx context.Context) (T, error), isEmpty func(T) bool) Result[T] {
	maxAttempts := f.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	sink := f.Sink
	if sink == nil {
		sink = status.Discard
	}

	attempts := 0
	operation := func() (v T, err error) {
		attempts++
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("provider panic: %v", r)
			}
		}()
		v, err = op(ctx)
		if err == nil && isEmpty != nil && isEmpty(v) {
			err = ErrNoData
		}
		return v, err
	}

	notify := func(err error, wait time.Duration) {
		logger.Log.Warnf("获取 %s 数据失败 (第 %d/%d 次): %v", name, attempts, maxAttempts, err)
		sink.Notify(fmt.Sprintf("Error fetching %s data: %v", name, err))
		sink.Notify(fmt.Sprintf("Retrying in %d seconds...", int(wait.Round(time.Second)/time.Second)))
	}

	var timer backoff.Timer
	if f.NewTimer != nil {
		timer = f.NewTimer()
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.Backoff), uint64(maxAttempts-1)),
		ctx,
	)

	v, err := backoff.RetryNotifyWithTimerAndData(operation, policy, notify, timer)
	if err == nil {
		return Result[T]{Value: v, Outcome: dm.OutcomeSuccess, Attempts: attempts}
	}

	logger.Log.Errorf("获取 %s 数据失败，已尝试 %d 次: %v", name, attempts, err)
	sink.Notify(fmt.Sprintf("Error fetching %s data: %v. Giving up after %d attempts.", name, err, attempts))

	var zero T
	outcome := dm.OutcomeFailed
	if errors.Is(err, ErrNoData) {
		outcome = dm.OutcomeEmpty
	}
	return Result[T]{Value: zero, Outcome: outcome, Attempts: attempts, Err: err}
}
