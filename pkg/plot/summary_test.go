package plot

import (
	"testing"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeOfTrades(t *testing.T) {
	fig, err := VolumeOfTrades(testStrategyData())
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	buy, sell := fig.Data[0], fig.Data[1]
	assert.Equal(t, "Buy Amount", buy.Name)
	assert.Equal(t, "h", buy.Orientation)
	assert.Equal(t, Values{2.5}, buy.X)
	assert.Equal(t, Categories{"Total Amount"}, buy.Y)
	assert.Equal(t, "Sell Amount", sell.Name)
	assert.Equal(t, Values{1}, sell.X)

	assert.Equal(t, "Volume analysis", fig.Layout.Title.Text)
	assert.Equal(t, 300, fig.Layout.Height)
	assert.Equal(t, TemplatePlotlyWhite, fig.Layout.Template)
	assert.Equal(t, "Amount in Base Asset", fig.Layout.Axes["xaxis"].Title.Text)
}

func TestQuantityOfTrades(t *testing.T) {
	fig, err := QuantityOfTrades(testStrategyData())
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "Quantity of Buys", fig.Data[0].Name)
	assert.Equal(t, Values{2}, fig.Data[0].X)
	assert.Equal(t, "Quantity of Sells", fig.Data[1].Name)
	assert.Equal(t, Values{1}, fig.Data[1].X)
	assert.Equal(t, Categories{"Quantity of Orders"}, fig.Data[1].Y)
	assert.Equal(t, "Excution Analysis", fig.Layout.Title.Text)
	assert.Equal(t, "Quantity of orders", fig.Layout.Axes["xaxis"].Title.Text)
}

func TestSummary_MissingSide(t *testing.T) {
	onlyBuys := core.StrategyData{TradeFill: testStrategyData().Buys()}

	_, err := VolumeOfTrades(onlyBuys)
	require.ErrorIs(t, err, core.ErrTradeTypeNotFound)
	assert.Contains(t, err.Error(), "SELL")

	_, err = QuantityOfTrades(core.StrategyData{})
	require.ErrorIs(t, err, core.ErrTradeTypeNotFound)
	assert.Contains(t, err.Error(), "BUY")
}
