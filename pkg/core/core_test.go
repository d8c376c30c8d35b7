package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTradeType(t *testing.T) {
	tradeType, err := ParseTradeType(" buy ")
	require.NoError(t, err)
	assert.Equal(t, TradeTypeBuy, tradeType)

	tradeType, err = ParseTradeType("SELL")
	require.NoError(t, err)
	assert.Equal(t, TradeTypeSell, tradeType)

	_, err = ParseTradeType("HOLD")
	require.ErrorIs(t, err, ErrInvalidTradeType)
}

func TestStrategyData_BuysSells(t *testing.T) {
	data := StrategyData{TradeFill: []TradeFill{
		{OrderID: "1", TradeType: TradeTypeBuy},
		{OrderID: "2", TradeType: TradeTypeSell},
		{OrderID: "3", TradeType: TradeTypeBuy},
	}}

	buys := data.Buys()
	require.Len(t, buys, 2)
	assert.Equal(t, "1", buys[0].OrderID)
	assert.Equal(t, "3", buys[1].OrderID)
	require.Len(t, data.Sells(), 1)
}

func TestAccumulateNetAmount(t *testing.T) {
	fills := []TradeFill{{NetAmount: 1}, {NetAmount: -0.5}, {NetAmount: 2}}
	AccumulateNetAmount(fills)
	assert.Equal(t, []float64{1, 0.5, 2.5}, []float64{
		fills[0].CumNetAmount, fills[1].CumNetAmount, fills[2].CumNetAmount,
	})
}

func TestValidateCandles(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []Candle{{Time: start}, {Time: start.Add(time.Minute)}}
	require.NoError(t, ValidateCandles(candles))

	candles = append(candles, Candle{Time: start.Add(time.Minute)})
	require.ErrorIs(t, ValidateCandles(candles), ErrUnorderedCandles)
}

func TestDataframe(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	df := NewDataframe([]Candle{
		{Pair: "BTCUSDT", Time: start, Close: 1, Volume: 10},
		{Pair: "BTCUSDT", Time: start.Add(time.Hour), Close: 2, Volume: 20},
		{Pair: "BTCUSDT", Time: start.Add(2 * time.Hour), Close: 3, Volume: 30},
	})

	assert.Equal(t, "BTCUSDT", df.Pair)
	assert.Equal(t, 3, df.Len())
	assert.Equal(t, Series[float64]{1, 2, 3}, df.Close)
	assert.Equal(t, Series[float64]{10, 20, 30}, df.Volume)
	assert.Equal(t, start, df.Time[0])
}

func TestCandle_ToSlice(t *testing.T) {
	candle := Candle{
		Time:   time.Unix(1704067200, 0),
		Open:   1,
		High:   2.5,
		Low:    0.25,
		Close:  2,
		Volume: 100,
	}
	assert.Equal(t, []string{"1704067200", "1.00", "2.50", "0.25", "2.00", "100.00"}, candle.ToSlice(2))
}
