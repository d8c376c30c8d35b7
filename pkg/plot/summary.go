package plot

import (
	"fmt"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/samber/lo"
)

const summaryHeight = 300

// sideAggregate is the per trade type aggregation behind the summary charts
type sideAggregate struct {
	Amount float64
	Count  int
}

func aggregateBySide(fills []core.TradeFill) map[core.TradeType]sideAggregate {
	groups := lo.GroupBy(fills, func(fill core.TradeFill) core.TradeType {
		return fill.TradeType
	})

	return lo.MapValues(groups, func(group []core.TradeFill, _ core.TradeType) sideAggregate {
		return sideAggregate{
			Amount: lo.SumBy(group, func(fill core.TradeFill) float64 { return fill.Amount }),
			Count:  len(group),
		}
	})
}

// lookupSide fails when no fill of the trade type exists
func lookupSide(groups map[core.TradeType]sideAggregate, tradeType core.TradeType) (sideAggregate, error) {
	aggregate, ok := groups[tradeType]
	if !ok {
		return sideAggregate{}, fmt.Errorf("%w: %s", core.ErrTradeTypeNotFound, tradeType)
	}
	return aggregate, nil
}

// VolumeOfTrades charts the total traded amount of buys and sells as two
// horizontal bars. It fails with core.ErrTradeTypeNotFound when either side
// has no fills.
func VolumeOfTrades(data core.StrategyData) (*Figure, error) {
	groups := aggregateBySide(data.TradeFill)

	buy, err := lookupSide(groups, core.TradeTypeBuy)
	if err != nil {
		return nil, err
	}
	sell, err := lookupSide(groups, core.TradeTypeSell)
	if err != nil {
		return nil, err
	}

	return summaryFigure(
		"Volume analysis", "Amount in Base Asset", "Total Amount",
		summaryBar{"Buy Amount", buy.Amount},
		summaryBar{"Sell Amount", sell.Amount},
	), nil
}

// QuantityOfTrades charts the number of buy and sell fills as two horizontal
// bars. It fails with core.ErrTradeTypeNotFound when either side has no fills.
func QuantityOfTrades(data core.StrategyData) (*Figure, error) {
	groups := aggregateBySide(data.TradeFill)

	buy, err := lookupSide(groups, core.TradeTypeBuy)
	if err != nil {
		return nil, err
	}
	sell, err := lookupSide(groups, core.TradeTypeSell)
	if err != nil {
		return nil, err
	}

	return summaryFigure(
		"Excution Analysis", "Quantity of orders", "Quantity of Orders",
		summaryBar{"Quantity of Buys", float64(buy.Count)},
		summaryBar{"Quantity of Sells", float64(sell.Count)},
	), nil
}

type summaryBar struct {
	name  string
	value float64
}

func summaryFigure(title, xTitle, category string, bars ...summaryBar) *Figure {
	fig := NewFigure()
	for _, bar := range bars {
		// a single panel figure always has row 1
		_ = fig.AddTrace(&Trace{
			Type:        TraceBar,
			Name:        bar.name,
			X:           Values{bar.value},
			Y:           Categories{category},
			Orientation: "h",
		}, 1, false)
	}

	fig.XAxis(1).Title = &Title{Text: xTitle}
	fig.Layout.Title = &Title{Text: title}
	fig.Layout.Height = summaryHeight
	ApplyTemplate(fig.Layout, TemplatePlotlyWhite)
	return fig
}
