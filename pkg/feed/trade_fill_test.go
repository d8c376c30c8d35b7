package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTradeFills(t *testing.T) {
	path := writeFile(t, "trades.csv", strings.Join([]string{
		"timestamp,symbol,order_id,trade_type,price,amount,net_amount,cum_net_amount,realized_trade_pnl,unrealized_trade_pnl",
		"2024-01-01T00:30:00Z,BTCUSDT,a,BUY,100,1,1,1,0,-0.5",
		"2024-01-01T01:30:00Z,BTCUSDT,b,SELL,110,0.5,-0.5,0.5,5,1",
	}, "\n"))

	data, err := ReadTradeFills(path)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", data.Pair)
	require.Len(t, data.TradeFill, 2)

	sell := data.TradeFill[1]
	assert.Equal(t, "b", sell.OrderID)
	assert.Equal(t, core.TradeTypeSell, sell.TradeType)
	assert.Equal(t, 110.0, sell.Price)
	assert.Equal(t, -0.5, sell.NetAmount)
	assert.Equal(t, 0.5, sell.CumNetAmount)
	assert.Equal(t, 5.0, sell.RealizedTradePnL)
	assert.Equal(t, 1.0, sell.UnrealizedTradePnL)
}

func TestParseTradeFills(t *testing.T) {
	t.Run("derived amounts", func(t *testing.T) {
		data, err := ParseTradeFills(strings.NewReader(strings.Join([]string{
			"timestamp,trade_type,price,amount",
			"2024-01-01T02:00:00Z,sell,105,0.25",
			"2024-01-01T01:00:00Z,buy,100,1",
		}, "\n")))
		require.NoError(t, err)
		require.Len(t, data.TradeFill, 2)

		buy, sell := data.TradeFill[0], data.TradeFill[1]
		assert.Equal(t, time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), buy.Timestamp)
		assert.Equal(t, 1.0, buy.NetAmount)
		assert.Equal(t, 1.0, buy.CumNetAmount)
		assert.Equal(t, -0.25, sell.NetAmount)
		assert.Equal(t, 0.75, sell.CumNetAmount)
		assert.Zero(t, sell.RealizedTradePnL)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := ParseTradeFills(strings.NewReader("timestamp,trade_type,price\n2024-01-01,BUY,1\n"))
		require.ErrorIs(t, err, core.ErrMissingColumn)
	})

	t.Run("invalid trade type", func(t *testing.T) {
		_, err := ParseTradeFills(strings.NewReader("timestamp,trade_type,price,amount\n2024-01-01,HOLD,1,1\n"))
		require.ErrorIs(t, err, core.ErrInvalidTradeType)
	})

	t.Run("empty", func(t *testing.T) {
		data, err := ParseTradeFills(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, data.TradeFill)
	})
}
