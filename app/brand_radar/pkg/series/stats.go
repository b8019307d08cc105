package series

import (
	"math"

	"github.com/montanaflynn/stats"

	dm "github.com/iWorld-y/brand_radar/app/brand_radar/pkg/model"
)

// Compute 计算均值、最大值、最小值与波动率（样本标准差，N-1）。
// 空序列返回 false；少于两个点时波动率为 NaN。
func Compute(points []dm.TimeSeriesPoint) (dm.Statistics, bool) {
	if len(points) == 0 {
		return dm.Statistics{}, false
	}

	data := make(stats.Float64Data, len(points))
	for i, p := range points {
		data[i] = float64(p.Value)
	}

	// 非空输入下这些函数不会返回错误
	mean, _ := stats.Mean(data)
	maxV, _ := stats.Max(data)
	minV, _ := stats.Min(data)

	volatility := math.NaN()
	if len(data) >= 2 {
		if sd, err := stats.StandardDeviationSample(data); err == nil {
			volatility = sd
		}
	}

	return dm.Statistics{
		Mean:       mean,
		Max:        maxV,
		Min:        minV,
		Volatility: volatility,
	}, true
}

// PeakIndex 第一个最大值所在的位置，空序列返回 -1
func PeakIndex(points []dm.TimeSeriesPoint) int {
	peak := -1
	for i, p := range points {
		if peak < 0 || p.Value > points[peak].Value {
			peak = i
		}
	}
	return peak
}
