// Package report prints text summaries of a strategy's trade fills.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// SideSummary aggregates the fills of one trade type
type SideSummary struct {
	TradeType core.TradeType
	Trades    int
	Amount    float64 // base asset
	Volume    float64 // quote asset, price times amount
	MeanPrice float64 // amount weighted
}

// TradeSummary collects statistics about the fills of a strategy run
type TradeSummary struct {
	Pair           string
	Buy            SideSummary
	Sell           SideSummary
	RealizedPnL    float64
	FinalInventory float64
	netAmounts     []float64
	realizedPnLs   []float64
}

// NewTradeSummary aggregates the fills per trade type
func NewTradeSummary(data core.StrategyData) TradeSummary {
	summary := TradeSummary{
		Pair: data.Pair,
		Buy:  summarizeSide(core.TradeTypeBuy, data.Buys()),
		Sell: summarizeSide(core.TradeTypeSell, data.Sells()),
		netAmounts: lo.Map(data.TradeFill, func(fill core.TradeFill, _ int) float64 {
			return fill.NetAmount
		}),
		realizedPnLs: lo.FilterMap(data.TradeFill, func(fill core.TradeFill, _ int) (float64, bool) {
			return fill.RealizedTradePnL, fill.RealizedTradePnL != 0
		}),
	}

	summary.RealizedPnL = lo.Sum(summary.realizedPnLs)
	if n := len(data.TradeFill); n > 0 {
		summary.FinalInventory = data.TradeFill[n-1].CumNetAmount
	}

	return summary
}

func summarizeSide(tradeType core.TradeType, fills []core.TradeFill) SideSummary {
	side := SideSummary{TradeType: tradeType, Trades: len(fills)}
	if len(fills) == 0 {
		return side
	}

	prices := make([]float64, len(fills))
	weights := make([]float64, len(fills))
	for i, fill := range fills {
		prices[i], weights[i] = fill.Price, fill.Amount
		side.Amount += fill.Amount
		side.Volume += fill.Price * fill.Amount
	}

	if side.Amount > 0 {
		side.MeanPrice = stat.Mean(prices, weights)
	} else {
		side.MeanPrice = stat.Mean(prices, nil)
	}
	return side
}

// Trades returns the number of fills of both sides
func (s TradeSummary) Trades() int {
	return s.Buy.Trades + s.Sell.Trades
}

// String formats the summary as a text table
func (s TradeSummary) String() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Side", "Trades", "Amount", "Volume", "Avg Price"})

	for _, side := range []SideSummary{s.Buy, s.Sell} {
		table.Append([]string{
			string(side.TradeType),
			strconv.Itoa(side.Trades),
			fmt.Sprintf("%.4f", side.Amount),
			fmt.Sprintf("%.2f", side.Volume),
			fmt.Sprintf("%.4f", side.MeanPrice),
		})
	}

	table.SetFooter([]string{
		"TOTAL",
		strconv.Itoa(s.Trades()),
		fmt.Sprintf("%.4f", s.FinalInventory),
		fmt.Sprintf("%.2f", s.Buy.Volume+s.Sell.Volume),
		fmt.Sprintf("PnL %.4f", s.RealizedPnL),
	})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
	table.Render()

	if s.Pair == "" {
		return tableString.String()
	}
	return fmt.Sprintf("%s\n%s", s.Pair, tableString.String())
}

// Histogram prints the distribution of the signed fill amounts
func (s TradeSummary) Histogram(w io.Writer, bins int) error {
	if len(s.netAmounts) == 0 {
		return nil
	}
	hist := histogram.Hist(bins, s.netAmounts)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}

// PnLInterval estimates the mean realized PnL per closing fill
func (s TradeSummary) PnLInterval(samples int, confidence float64) (Interval, error) {
	return Bootstrap(s.realizedPnLs, Mean, samples, confidence)
}
