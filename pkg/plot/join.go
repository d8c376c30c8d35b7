package plot

import (
	"sort"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
)

// The overlays align trade fills to candles with as-of joins. Inventory uses
// the forward join so a position change shows from the candle it falls in;
// PnL uses the nearest join since it evolves continuously with price. Both
// return, for each candle, the index of the matched fill or -1.

// MergeForward matches each candle time with the first fill at or after it.
// fills must be sorted by timestamp.
func MergeForward(candles []time.Time, fills []core.TradeFill) []int {
	matches := make([]int, len(candles))
	for i, t := range candles {
		j := sort.Search(len(fills), func(k int) bool {
			return !fills[k].Timestamp.Before(t)
		})
		if j == len(fills) {
			j = -1
		}
		matches[i] = j
	}
	return matches
}

// MergeNearest matches each candle time with the fill closest in time. When
// the previous and next fills are equally distant the previous one wins.
// fills must be sorted by timestamp.
func MergeNearest(candles []time.Time, fills []core.TradeFill) []int {
	matches := make([]int, len(candles))
	for i, t := range candles {
		// first fill strictly after t
		after := sort.Search(len(fills), func(k int) bool {
			return fills[k].Timestamp.After(t)
		})
		backward := after - 1
		// first fill at or after t
		forward := sort.Search(len(fills), func(k int) bool {
			return !fills[k].Timestamp.Before(t)
		})

		switch {
		case backward < 0 && forward == len(fills):
			matches[i] = -1
		case backward < 0:
			matches[i] = forward
		case forward == len(fills):
			matches[i] = backward
		case t.Sub(fills[backward].Timestamp) <= fills[forward].Timestamp.Sub(t):
			matches[i] = backward
		default:
			matches[i] = forward
		}
	}
	return matches
}

// sortedFills returns a copy of the fills ordered by timestamp
func sortedFills(fills []core.TradeFill) []core.TradeFill {
	sorted := append([]core.TradeFill(nil), fills...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
