package plot

import (
	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/raykavin/tradeplot/pkg/logger"
	zerologadapter "github.com/raykavin/tradeplot/pkg/logger/zerolog"
	"github.com/raykavin/tradeplot/pkg/notification"
)

// Panel weights and spacing of the market activity chart
const (
	PriceRowHeight  = 0.8
	VolumeRowHeight = 0.2
	ExtraRowHeight  = 0.3
	RowSpacing      = 0.05
	ChartHeight     = 1000

	priceRow  = 1
	volumeRow = 2
)

// CandlesGraph builds the market activity chart of a candle table: price on
// the first row, volume on the second when enabled, and extra rows below for
// inventory and PnL overlays.
type CandlesGraph struct {
	dataframe  *core.Dataframe
	showVolume bool
	extraRows  int
	rows       int
	heights    []float64
	figure     *Figure
	styles     Styles
	notifier   notification.Notifier
	log        logger.Logger
}

// Option defines a function type for configuring a CandlesGraph
type Option func(*CandlesGraph)

// WithVolume toggles the volume row
func WithVolume(show bool) Option {
	return func(g *CandlesGraph) {
		g.showVolume = show
	}
}

// WithExtraRows reserves empty rows below price and volume
func WithExtraRows(rows int) Option {
	return func(g *CandlesGraph) {
		if rows < 0 {
			rows = 0
		}
		g.extraRows = rows
	}
}

// WithNotifier sets where insufficient data warnings go
func WithNotifier(notifier notification.Notifier) Option {
	return func(g *CandlesGraph) {
		g.notifier = notifier
	}
}

// WithLogger sets the builder logger
func WithLogger(log logger.Logger) Option {
	return func(g *CandlesGraph) {
		g.log = log
	}
}

// WithStyles overrides the look of some trace kinds
func WithStyles(styles Styles) Option {
	return func(g *CandlesGraph) {
		g.styles = styles
	}
}

// NewCandlesGraph lays out the rows and draws the candles, and the volume
// bars when enabled
func NewCandlesGraph(candles []core.Candle, options ...Option) *CandlesGraph {
	g := &CandlesGraph{
		dataframe:  core.NewDataframe(candles),
		showVolume: true,
		extraRows:  1,
		styles:     DefaultStyles,
	}

	for _, option := range options {
		option(g)
	}

	if g.log == nil {
		g.log = zerologadapter.Nop()
	}
	if g.notifier == nil {
		g.notifier = notification.NewLog(g.log)
	}

	g.rows, g.heights = RowsAndHeights(g.showVolume, g.extraRows)
	g.figure = NewSubplots(g.rows, g.heights, RowSpacing)

	g.addCandles()
	if g.showVolume {
		g.addVolume()
	}
	g.updateLayout()

	return g
}

// RowsAndHeights returns the number of rows and their relative heights for
// a chart with the given volume flag and extra rows
func RowsAndHeights(showVolume bool, extraRows int) (int, []float64) {
	heights := make([]float64, 0, extraRows+2)
	heights = append(heights, PriceRowHeight)
	if showVolume {
		heights = append(heights, VolumeRowHeight)
	}
	for i := 0; i < extraRows; i++ {
		heights = append(heights, ExtraRowHeight)
	}
	return len(heights), heights
}

// Figure returns the chart built so far
func (g *CandlesGraph) Figure() *Figure {
	return g.figure
}

// Rows returns the number of rows of the chart
func (g *CandlesGraph) Rows() int {
	return g.rows
}

// RowHeights returns the relative heights of the rows, top to bottom
func (g *CandlesGraph) RowHeights() []float64 {
	return append([]float64(nil), g.heights...)
}

func (g *CandlesGraph) addCandles() {
	style := g.styles.Get(KindCandles)
	g.add(&Trace{
		Type:  TraceCandlestick,
		Name:  style.Name,
		X:     Times(g.dataframe.Time),
		Open:  Values(g.dataframe.Open),
		High:  Values(g.dataframe.High),
		Low:   Values(g.dataframe.Low),
		Close: Values(g.dataframe.Close),
	}, priceRow, false)
}

func (g *CandlesGraph) addVolume() {
	style := g.styles.Get(KindVolume)
	g.add(&Trace{
		Type:    TraceBar,
		Name:    style.Name,
		X:       Times(g.dataframe.Time),
		Y:       Values(g.dataframe.Volume),
		Opacity: style.Opacity,
		Marker:  &Marker{Color: style.Color},
	}, volumeRow, false)
}

func (g *CandlesGraph) updateLayout() {
	layout := g.figure.Layout
	layout.Title = &Title{
		Text:    "Market activity",
		X:       0.5,
		Y:       0.95,
		XAnchor: "center",
		YAnchor: "top",
	}
	layout.Legend = &Legend{
		Orientation: "h",
		X:           1,
		Y:           -0.2,
		XAnchor:     "right",
		YAnchor:     "bottom",
	}
	layout.Height = ChartHeight
	layout.HoverMode = "x unified"
	ApplyTemplate(layout, TemplatePlotly)
	g.figure.XAxis(priceRow).RangeSlider = &RangeSlider{Visible: false}

	g.updateYAxis(priceRow, false, "Price")
	if g.showVolume {
		g.updateYAxis(volumeRow, false, "Volume")
	}
	if err := g.figure.UpdateXAxis(g.rows, "Time"); err != nil {
		g.log.WithError(err).Error("failed to set time axis title")
	}
}

// add places a trace in the figure, logging traces aimed at a missing row
func (g *CandlesGraph) add(trace *Trace, row int, secondaryY bool) {
	if err := g.figure.AddTrace(trace, row, secondaryY); err != nil {
		g.log.WithError(err).WithField("trace", trace.Name).Error("trace skipped")
	}
}

func (g *CandlesGraph) updateYAxis(row int, secondaryY bool, title string) {
	if err := g.figure.UpdateYAxis(row, secondaryY, title); err != nil {
		g.log.WithError(err).WithField("title", title).Error("axis title skipped")
	}
}

// TraceOption configures where an overlay is drawn
type TraceOption func(*traceConfig)

type traceConfig struct {
	row int
}

// OnRow draws the overlay on the given 1-based row
func OnRow(row int) TraceOption {
	return func(c *traceConfig) {
		c.row = row
	}
}

func newTraceConfig(defaultRow int, options []TraceOption) traceConfig {
	config := traceConfig{row: defaultRow}
	for _, option := range options {
		option(&config)
	}
	return config
}
