// Package indicator wraps the go-talib functions the charts overlay on price.
//
// talib fills the lookback period with zeros; the wrappers here replace those
// positions with NaN so plotted lines start where the indicator is defined.
package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
)

// BB calculates Bollinger Bands over a simple moving average.
// Returns upper, middle, and lower bands
func BB(input []float64, period int, deviation float64) ([]float64, []float64, []float64) {
	upper, middle, lower := talib.BBands(input, period, deviation, deviation, talib.SMA)
	lookback := Lookback(period)
	return maskWarmup(upper, lookback), maskWarmup(middle, lookback), maskWarmup(lower, lookback)
}

// EMA calculates Exponential Moving Average
func EMA(input []float64, period int) []float64 {
	return maskWarmup(talib.Ema(input, period), Lookback(period))
}

// Lookback returns how many leading values a windowed indicator cannot compute
func Lookback(period int) int {
	if period <= 1 {
		return 0
	}
	return period - 1
}

// Enough reports whether size values are enough to compute an indicator over period
func Enough(size, period int) bool {
	return size >= period
}

func maskWarmup(values []float64, lookback int) []float64 {
	for i := 0; i < lookback && i < len(values); i++ {
		values[i] = math.NaN()
	}
	return values
}
