package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// TradeType is the side of an executed trade
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// ParseTradeType converts a raw side label into a TradeType
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(strings.ToUpper(strings.TrimSpace(s))) {
	case TradeTypeBuy:
		return TradeTypeBuy, nil
	case TradeTypeSell:
		return TradeTypeSell, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTradeType, s)
}

// TradeFill is one executed trade of a strategy
type TradeFill struct {
	Timestamp          time.Time
	OrderID            string
	TradeType          TradeType
	Price              float64
	Amount             float64
	NetAmount          float64 // signed base asset change, positive on buys
	CumNetAmount       float64
	RealizedTradePnL   float64
	UnrealizedTradePnL float64
}

// StrategyData groups the tables produced by a strategy run
type StrategyData struct {
	Pair      string
	TradeFill []TradeFill
}

// Buys returns the buy fills in their original order
func (s StrategyData) Buys() []TradeFill {
	return s.byType(TradeTypeBuy)
}

// Sells returns the sell fills in their original order
func (s StrategyData) Sells() []TradeFill {
	return s.byType(TradeTypeSell)
}

func (s StrategyData) byType(tradeType TradeType) []TradeFill {
	return lo.Filter(s.TradeFill, func(fill TradeFill, _ int) bool {
		return fill.TradeType == tradeType
	})
}

// AccumulateNetAmount fills CumNetAmount with the running sum of NetAmount
func AccumulateNetAmount(fills []TradeFill) {
	var total float64
	for i := range fills {
		total += fills[i].NetAmount
		fills[i].CumNetAmount = total
	}
}
