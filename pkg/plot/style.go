package plot

// TraceKind identifies a trace drawn by the chart builders
type TraceKind string

const (
	KindCandles          TraceKind = "candles"
	KindVolume           TraceKind = "volume"
	KindBuyTrades        TraceKind = "buy_trades"
	KindSellTrades       TraceKind = "sell_trades"
	KindBollingerBands   TraceKind = "bollinger_bands"
	KindEMA              TraceKind = "ema"
	KindInventoryChange  TraceKind = "inventory_change"
	KindCumInventory     TraceKind = "cum_inventory"
	KindTradePnL         TraceKind = "trade_pnl_continuous"
	KindRealizedTradePnL TraceKind = "trade_pnl_realized"
)

// Style is the fixed look of a trace kind
type Style struct {
	Name          string
	Mode          string
	Color         string
	NegativeColor string // bar color for values <= 0, when set
	Width         float64
	Symbol        string
	Size          float64
	Opacity       float64
	OutlineColor  string
	OutlineWidth  float64
}

// Styles maps every trace kind to its style
type Styles map[TraceKind]Style

// DefaultStyles is the look of every trace the builders draw
var DefaultStyles = Styles{
	KindCandles: {Name: "OHLC"},
	KindVolume:  {Name: "Volume", Color: "lightgreen", Opacity: 0.5},
	KindBuyTrades: {
		Name: "Buy Orders", Mode: "markers", Symbol: "triangle-up", Color: "green",
		Size: 12, Opacity: 0.7, OutlineColor: "black", OutlineWidth: 1,
	},
	KindSellTrades: {
		Name: "Sell Orders", Mode: "markers", Symbol: "triangle-down", Color: "red",
		Size: 12, Opacity: 0.7, OutlineColor: "black", OutlineWidth: 1,
	},
	KindBollingerBands: {Name: "Bollinger Bands", Mode: "lines", Color: "blue", Width: 1},
	KindEMA:            {Name: "EMA", Mode: "lines", Color: "yellow", Width: 1},
	KindInventoryChange: {
		Name: "Base Inventory Change", Color: "lightgreen", NegativeColor: "indianred", Opacity: 0.5,
	},
	KindCumInventory:     {Name: "Cumulative Base Inventory Change", Mode: "lines", Color: "black", Width: 1},
	KindTradePnL:         {Name: "Cumulative Trade PnL Continuos", Mode: "lines", Color: "chocolate", Width: 2},
	KindRealizedTradePnL: {Name: "Cumulative Trade PnL by Trade", Mode: "lines", Color: "cornflowerblue", Width: 2},
}

// Get returns the style of kind, falling back to DefaultStyles for kinds
// the table does not override
func (s Styles) Get(kind TraceKind) Style {
	if style, ok := s[kind]; ok {
		return style
	}
	return DefaultStyles[kind]
}

func (s Style) line() *Line {
	return &Line{Color: s.Color, Width: s.Width}
}

func (s Style) marker() *Marker {
	marker := &Marker{
		Symbol:  s.Symbol,
		Size:    s.Size,
		Opacity: s.Opacity,
	}
	if s.Color != "" {
		marker.Color = s.Color
	}
	if s.OutlineColor != "" {
		marker.Line = &Line{Color: s.OutlineColor, Width: s.OutlineWidth}
	}
	return marker
}

// signColors colors each value by its sign, positive values with the style
// color and the rest with the negative color
func (s Style) signColors(values []float64) []string {
	colors := make([]string, len(values))
	for i, value := range values {
		colors[i] = s.NegativeColor
		if value > 0 {
			colors[i] = s.Color
		}
	}
	return colors
}
