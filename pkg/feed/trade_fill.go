package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/raykavin/tradeplot/pkg/core"
)

var tradeFillColumns = []string{"timestamp", "price", "trade_type", "amount"}

// ReadTradeFills loads the trade fills of a strategy run from a CSV file
func ReadTradeFills(path string) (core.StrategyData, error) {
	file, err := os.Open(path)
	if err != nil {
		return core.StrategyData{}, err
	}
	defer file.Close()

	data, err := ParseTradeFills(file)
	if err != nil {
		return core.StrategyData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ParseTradeFills reads trade fills from CSV with a header row. timestamp,
// price, trade_type and amount are required. net_amount defaults to the
// amount signed by side, cum_net_amount to the running sum of net_amount and
// the PnL columns to zero. Fills are returned ordered by timestamp.
func ParseTradeFills(r io.Reader) (core.StrategyData, error) {
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return core.StrategyData{}, err
	}
	if len(lines) == 0 {
		return core.StrategyData{TradeFill: []core.TradeFill{}}, nil
	}

	header, ok := parseHeader(lines[0])
	if !ok {
		return core.StrategyData{}, fmt.Errorf("%w: header", core.ErrMissingColumn)
	}
	for _, column := range tradeFillColumns {
		if _, ok := header[column]; !ok {
			return core.StrategyData{}, fmt.Errorf("%w: %s", core.ErrMissingColumn, column)
		}
	}

	_, hasNetAmount := header["net_amount"]
	_, hasCumNetAmount := header["cum_net_amount"]

	data := core.StrategyData{TradeFill: make([]core.TradeFill, 0, len(lines)-1)}
	for i, line := range lines[1:] {
		fill, err := parseTradeFill(line, header, hasNetAmount, hasCumNetAmount)
		if err != nil {
			return core.StrategyData{}, fmt.Errorf("line %d: %w", i+2, err)
		}
		if index, ok := header["symbol"]; ok && data.Pair == "" {
			data.Pair = line[index]
		}
		data.TradeFill = append(data.TradeFill, fill)
	}

	sort.SliceStable(data.TradeFill, func(i, j int) bool {
		return data.TradeFill[i].Timestamp.Before(data.TradeFill[j].Timestamp)
	})
	if !hasCumNetAmount {
		core.AccumulateNetAmount(data.TradeFill)
	}

	return data, nil
}

func parseTradeFill(line []string, header map[string]int, hasNetAmount, hasCumNetAmount bool) (core.TradeFill, error) {
	var (
		fill core.TradeFill
		err  error
	)

	if fill.Timestamp, err = ParseTime(line[header["timestamp"]]); err != nil {
		return core.TradeFill{}, err
	}
	if fill.TradeType, err = core.ParseTradeType(line[header["trade_type"]]); err != nil {
		return core.TradeFill{}, err
	}
	if fill.Price, err = parseFloat(line, header, "price"); err != nil {
		return core.TradeFill{}, err
	}
	if fill.Amount, err = parseFloat(line, header, "amount"); err != nil {
		return core.TradeFill{}, err
	}

	if hasNetAmount {
		if fill.NetAmount, err = parseFloat(line, header, "net_amount"); err != nil {
			return core.TradeFill{}, err
		}
	} else {
		fill.NetAmount = fill.Amount
		if fill.TradeType == core.TradeTypeSell {
			fill.NetAmount = -fill.Amount
		}
	}

	if hasCumNetAmount {
		if fill.CumNetAmount, err = parseFloat(line, header, "cum_net_amount"); err != nil {
			return core.TradeFill{}, err
		}
	}
	if _, ok := header["realized_trade_pnl"]; ok {
		if fill.RealizedTradePnL, err = parseFloat(line, header, "realized_trade_pnl"); err != nil {
			return core.TradeFill{}, err
		}
	}
	if _, ok := header["unrealized_trade_pnl"]; ok {
		if fill.UnrealizedTradePnL, err = parseFloat(line, header, "unrealized_trade_pnl"); err != nil {
			return core.TradeFill{}, err
		}
	}
	if index, ok := header["order_id"]; ok {
		fill.OrderID = strings.TrimSpace(line[index])
	}

	return fill, nil
}
