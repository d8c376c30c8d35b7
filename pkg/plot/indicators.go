package plot

import (
	"github.com/raykavin/tradeplot/pkg/indicator"
)

// Default indicator windows
const (
	DefaultBollingerLength = 20
	DefaultBollingerStd    = 2.0
	DefaultEMALength       = 20
)

// AddBollingerBands draws the upper, middle and lower bands of the closes.
// The bands always go to the price row; a row option is accepted for
// symmetry with the other overlays and only logged.
// With fewer candles than length nothing is drawn and a warning is raised.
func (g *CandlesGraph) AddBollingerBands(length int, std float64, options ...TraceOption) {
	config := newTraceConfig(priceRow, options)
	if length < 1 {
		g.log.Errorf("invalid bollinger bands length %d", length)
		return
	}
	if !indicator.Enough(g.dataframe.Len(), length) {
		g.notifier.Warn("Not enough data to calculate Bollinger Bands")
		return
	}
	if config.row != priceRow {
		g.log.Debugf("bollinger bands are drawn on the price row, ignoring row %d", config.row)
	}

	upper, middle, lower := indicator.BB(g.dataframe.Close, length, std)
	style := g.styles.Get(KindBollingerBands)
	for _, band := range [][]float64{upper, middle, lower} {
		g.add(&Trace{
			Type: TraceScatter,
			Name: style.Name,
			X:    Times(g.dataframe.Time),
			Y:    Values(band),
			Mode: style.Mode,
			Line: style.line(),
		}, priceRow, false)
	}
}

// AddEMA draws the exponential moving average of the closes, on the price
// row unless another row is given.
// With fewer candles than length nothing is drawn and a warning is raised.
func (g *CandlesGraph) AddEMA(length int, options ...TraceOption) {
	config := newTraceConfig(priceRow, options)
	if length < 1 {
		g.log.Errorf("invalid EMA length %d", length)
		return
	}
	if !indicator.Enough(g.dataframe.Len(), length) {
		g.notifier.Warn("Not enough data to calculate EMA")
		return
	}

	style := g.styles.Get(KindEMA)
	g.add(&Trace{
		Type: TraceScatter,
		Name: style.Name,
		X:    Times(g.dataframe.Time),
		Y:    Values(indicator.EMA(g.dataframe.Close, length)),
		Mode: style.Mode,
		Line: style.line(),
	}, config.row, false)
}
