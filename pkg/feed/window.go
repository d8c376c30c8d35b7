package feed

import (
	"fmt"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"
)

// LastWindow keeps the candles and fills of the trailing window, measured
// back from the last candle. window accepts day and week units (7d, 1w12h).
// An empty window keeps everything.
func LastWindow(candles []core.Candle, data core.StrategyData, window string) ([]core.Candle, core.StrategyData, error) {
	if window == "" || len(candles) == 0 {
		return candles, data, nil
	}

	duration, err := str2duration.ParseDuration(window)
	if err != nil {
		return nil, core.StrategyData{}, fmt.Errorf("invalid window %q: %w", window, err)
	}

	start := candles[len(candles)-1].Time.Add(-duration)

	candles = lo.Filter(candles, func(candle core.Candle, _ int) bool {
		return candle.Time.After(start)
	})
	data.TradeFill = lo.Filter(data.TradeFill, func(fill core.TradeFill, _ int) bool {
		return fill.Timestamp.After(start)
	})

	return candles, data, nil
}

// Resample aggregates candles into buckets of the target timeframe (15m, 4h,
// 1d). Buckets are aligned to the timeframe in UTC.
func Resample(candles []core.Candle, timeframe string) ([]core.Candle, error) {
	duration, err := str2duration.ParseDuration(timeframe)
	if err != nil {
		return nil, fmt.Errorf("invalid timeframe %q: %w", timeframe, err)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("invalid timeframe %q", timeframe)
	}

	resampled := make([]core.Candle, 0, len(candles))
	var bucket time.Time
	for _, candle := range candles {
		start := candle.Time.UTC().Truncate(duration)
		if len(resampled) == 0 || !start.Equal(bucket) {
			bucket = start
			candle.Time = start
			resampled = append(resampled, candle)
			continue
		}

		current := &resampled[len(resampled)-1]
		current.High = max(current.High, candle.High)
		current.Low = min(current.Low, candle.Low)
		current.Close = candle.Close
		current.Volume += candle.Volume
	}

	return resampled, nil
}
