package feed

import (
	"testing"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func hourlyCandles(n int) []core.Candle {
	candles := make([]core.Candle, n)
	for i := range candles {
		price := float64(i + 1)
		candles[i] = core.Candle{
			Time:   day.Add(time.Duration(i) * time.Hour),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price + 0.5,
			Volume: 10,
		}
	}
	return candles
}

func TestLastWindow(t *testing.T) {
	candles := hourlyCandles(72)
	data := core.StrategyData{TradeFill: []core.TradeFill{
		{Timestamp: day.Add(2 * time.Hour)},
		{Timestamp: day.Add(60 * time.Hour)},
	}}

	windowed, windowedData, err := LastWindow(candles, data, "1d")
	require.NoError(t, err)
	require.Len(t, windowed, 24)
	assert.Equal(t, day.Add(48*time.Hour), windowed[0].Time)
	require.Len(t, windowedData.TradeFill, 1)
	assert.Equal(t, day.Add(60*time.Hour), windowedData.TradeFill[0].Timestamp)

	all, allData, err := LastWindow(candles, data, "")
	require.NoError(t, err)
	assert.Len(t, all, 72)
	assert.Len(t, allData.TradeFill, 2)

	_, _, err = LastWindow(candles, data, "soon")
	require.Error(t, err)
}

func TestResample(t *testing.T) {
	resampled, err := Resample(hourlyCandles(8), "4h")
	require.NoError(t, err)
	require.Len(t, resampled, 2)

	first := resampled[0]
	assert.Equal(t, day, first.Time)
	assert.Equal(t, 1.0, first.Open)
	assert.Equal(t, 5.0, first.High)
	assert.Equal(t, 0.0, first.Low)
	assert.Equal(t, 4.5, first.Close)
	assert.Equal(t, 40.0, first.Volume)
	assert.Equal(t, day.Add(4*time.Hour), resampled[1].Time)

	_, err = Resample(hourlyCandles(2), "0h")
	require.Error(t, err)
}
