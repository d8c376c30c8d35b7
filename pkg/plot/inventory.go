package plot

import (
	"math"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/samber/lo"
)

// Default rows of the strategy overlays
const (
	DefaultInventoryRow = 3
	DefaultTradePnLRow  = 4
)

// AddBaseInventoryChange draws one bar per fill with its net base amount and,
// on the secondary axis, the cumulative net amount at each candle.
func (g *CandlesGraph) AddBaseInventoryChange(data core.StrategyData, options ...TraceOption) {
	config := newTraceConfig(DefaultInventoryRow, options)
	fills := sortedFills(data.TradeFill)

	netAmounts := lo.Map(fills, func(fill core.TradeFill, _ int) float64 {
		return fill.NetAmount
	})

	barStyle := g.styles.Get(KindInventoryChange)
	g.add(&Trace{
		Type: TraceBar,
		Name: barStyle.Name,
		X: Times(lo.Map(fills, func(fill core.TradeFill, _ int) time.Time {
			return fill.Timestamp
		})),
		Y:       Values(netAmounts),
		Opacity: barStyle.Opacity,
		Marker:  &Marker{Color: barStyle.signColors(netAmounts)},
	}, config.row, false)

	matches := MergeForward(g.dataframe.Time, fills)
	cumulative := make(Values, len(matches))
	for i, match := range matches {
		cumulative[i] = math.NaN()
		if match >= 0 {
			cumulative[i] = fills[match].CumNetAmount
		}
	}

	lineStyle := g.styles.Get(KindCumInventory)
	g.add(&Trace{
		Type: TraceScatter,
		Name: lineStyle.Name,
		X:    Times(g.dataframe.Time),
		Y:    cumulative,
		Mode: lineStyle.Mode,
		Line: lineStyle.line(),
	}, config.row, true)

	g.updateYAxis(config.row, true, "Cum Base Inventory Change")
	g.updateYAxis(config.row, false, "Base Inventory Change")
}

// AddTradePnL draws the mark-to-market PnL at each candle, unrealized PnL plus
// the cumulative position valued at the close, next to the realized PnL of
// the nearest fill.
func (g *CandlesGraph) AddTradePnL(data core.StrategyData, options ...TraceOption) {
	config := newTraceConfig(DefaultTradePnLRow, options)
	fills := sortedFills(data.TradeFill)

	matches := MergeNearest(g.dataframe.Time, fills)
	continuous := make(Values, len(matches))
	realized := make(Values, len(matches))
	for i, match := range matches {
		if match < 0 {
			continuous[i], realized[i] = math.NaN(), math.NaN()
			continue
		}
		fill := fills[match]
		continuous[i] = fill.UnrealizedTradePnL + fill.CumNetAmount*g.dataframe.Close[i]
		realized[i] = fill.RealizedTradePnL
	}

	for _, series := range []struct {
		kind   TraceKind
		values Values
	}{
		{KindTradePnL, continuous},
		{KindRealizedTradePnL, realized},
	} {
		style := g.styles.Get(series.kind)
		g.add(&Trace{
			Type: TraceScatter,
			Name: style.Name,
			X:    Times(g.dataframe.Time),
			Y:    series.values,
			Mode: style.Mode,
			Line: style.line(),
		}, config.row, false)
	}

	g.updateYAxis(config.row, false, "Cum Trade PnL")
}
