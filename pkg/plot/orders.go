package plot

import (
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/samber/lo"
)

// AddBuyTrades draws a marker at the time and price of each fill
func (g *CandlesGraph) AddBuyTrades(fills []core.TradeFill) {
	g.addTradeMarkers(KindBuyTrades, fills)
}

// AddSellTrades draws a marker at the time and price of each fill
func (g *CandlesGraph) AddSellTrades(fills []core.TradeFill) {
	g.addTradeMarkers(KindSellTrades, fills)
}

func (g *CandlesGraph) addTradeMarkers(kind TraceKind, fills []core.TradeFill) {
	style := g.styles.Get(kind)
	g.add(&Trace{
		Type: TraceScatter,
		Name: style.Name,
		X: Times(lo.Map(fills, func(fill core.TradeFill, _ int) time.Time {
			return fill.Timestamp
		})),
		Y: Values(lo.Map(fills, func(fill core.TradeFill, _ int) float64 {
			return fill.Price
		})),
		Mode:   style.Mode,
		Marker: style.marker(),
	}, priceRow, false)
}
