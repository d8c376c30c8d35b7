package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strategyData() core.StrategyData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fills := []core.TradeFill{
		{Timestamp: start, TradeType: core.TradeTypeBuy, Price: 100, Amount: 1, NetAmount: 1},
		{Timestamp: start.Add(time.Hour), TradeType: core.TradeTypeBuy, Price: 130, Amount: 2, NetAmount: 2},
		{Timestamp: start.Add(2 * time.Hour), TradeType: core.TradeTypeSell, Price: 150, Amount: 1.5, NetAmount: -1.5, RealizedTradePnL: 45},
		{Timestamp: start.Add(3 * time.Hour), TradeType: core.TradeTypeSell, Price: 110, Amount: 0.5, NetAmount: -0.5, RealizedTradePnL: -5},
	}
	core.AccumulateNetAmount(fills)
	return core.StrategyData{Pair: "BTCUSDT", TradeFill: fills}
}

func TestNewTradeSummary(t *testing.T) {
	summary := NewTradeSummary(strategyData())

	assert.Equal(t, "BTCUSDT", summary.Pair)
	assert.Equal(t, 4, summary.Trades())

	assert.Equal(t, 2, summary.Buy.Trades)
	assert.Equal(t, 3.0, summary.Buy.Amount)
	assert.Equal(t, 360.0, summary.Buy.Volume)
	assert.InDelta(t, 120.0, summary.Buy.MeanPrice, 1e-9)

	assert.Equal(t, 2, summary.Sell.Trades)
	assert.Equal(t, 2.0, summary.Sell.Amount)
	assert.Equal(t, 280.0, summary.Sell.Volume)
	assert.InDelta(t, 140.0, summary.Sell.MeanPrice, 1e-9)

	assert.Equal(t, 40.0, summary.RealizedPnL)
	assert.Equal(t, 1.0, summary.FinalInventory)
}

func TestNewTradeSummary_Empty(t *testing.T) {
	summary := NewTradeSummary(core.StrategyData{})
	assert.Zero(t, summary.Trades())
	assert.Zero(t, summary.Buy.MeanPrice)
	assert.Zero(t, summary.FinalInventory)

	var out bytes.Buffer
	require.NoError(t, summary.Histogram(&out, 5))
	assert.Empty(t, out.String())
}

func TestTradeSummary_String(t *testing.T) {
	table := NewTradeSummary(strategyData()).String()

	assert.Contains(t, table, "BTCUSDT")
	assert.Contains(t, table, "BUY")
	assert.Contains(t, table, "SELL")
	assert.Contains(t, table, "360.00")
	assert.Contains(t, table, "40.0000")
}

func TestTradeSummary_Histogram(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewTradeSummary(strategyData()).Histogram(&out, 4))
	assert.NotEmpty(t, out.String())
}

func TestBootstrap(t *testing.T) {
	interval, err := Bootstrap([]float64{2, 2, 2}, Mean, 100, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 2.0, interval.Mean)
	assert.Equal(t, 2.0, interval.Lower)
	assert.Equal(t, 2.0, interval.Upper)
	assert.Zero(t, interval.StdDev)

	interval, err = Bootstrap(nil, Mean, 100, 0.95)
	require.NoError(t, err)
	assert.Equal(t, Interval{}, interval)

	interval, err = NewTradeSummary(strategyData()).PnLInterval(200, 0.9)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, interval.Lower, -5.0)
	assert.LessOrEqual(t, interval.Upper, 45.0)
	assert.LessOrEqual(t, interval.Lower, interval.Upper)
}

func TestBootstrap_InvalidConfidence(t *testing.T) {
	for _, confidence := range []float64{95, 1, 0, -0.5} {
		_, err := Bootstrap([]float64{1, 2, 3}, Mean, 100, confidence)
		require.ErrorIs(t, err, ErrInvalidConfidence, "confidence %g", confidence)
	}

	_, err := NewTradeSummary(strategyData()).PnLInterval(100, 95)
	require.ErrorIs(t, err, ErrInvalidConfidence)
}
