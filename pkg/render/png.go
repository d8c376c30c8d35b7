package render

import (
	"errors"
	"io"
	"math"
	"strings"
	"time"

	"github.com/raykavin/tradeplot/pkg/plot"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToDraw = errors.New("figure has no drawable price series")

// hex values of the named colors used by the chart styles
var namedColors = map[string]string{
	"black":          "000000",
	"blue":           "0000ff",
	"chocolate":      "d2691e",
	"cornflowerblue": "6495ed",
	"green":          "008000",
	"indianred":      "cd5c5c",
	"lightgreen":     "90ee90",
	"red":            "ff0000",
	"yellow":         "ffd700",
}

var candleCloseColor = drawing.ColorFromHex("444444")

// PNG draws the price row of fig as a static image. Candlesticks become
// their close line; scatter traces become lines or dots. Missing values are
// dropped and series with fewer than two points are left out.
func PNG(w io.Writer, fig *plot.Figure, width, height int) error {
	series := make([]chart.Series, 0)
	for _, trace := range fig.TracesInRow(1) {
		if ts, ok := timeSeries(trace); ok {
			series = append(series, ts)
		}
	}
	if len(series) == 0 {
		return ErrNothingToDraw
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{Name: "Price"},
		Series: series,
	}
	if fig.Layout != nil && fig.Layout.Title != nil {
		graph.Title = fig.Layout.Title.Text
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

func timeSeries(trace *plot.Trace) (chart.TimeSeries, bool) {
	times, ok := trace.X.(plot.Times)
	if !ok {
		return chart.TimeSeries{}, false
	}

	var (
		values plot.Values
		style  chart.Style
	)
	switch trace.Type {
	case plot.TraceCandlestick:
		values = trace.Close
		style = chart.Style{StrokeColor: candleCloseColor, StrokeWidth: 1}
	case plot.TraceScatter:
		values, ok = trace.Y.(plot.Values)
		if !ok {
			return chart.TimeSeries{}, false
		}
		style = scatterStyle(trace)
	default:
		return chart.TimeSeries{}, false
	}

	xs := make([]time.Time, 0, len(times))
	ys := make([]float64, 0, len(values))
	for i := 0; i < len(times) && i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, values[i])
	}
	if len(xs) < 2 {
		return chart.TimeSeries{}, false
	}

	return chart.TimeSeries{
		Name:    trace.Name,
		XValues: xs,
		YValues: ys,
		Style:   style,
	}, true
}

func scatterStyle(trace *plot.Trace) chart.Style {
	if strings.Contains(trace.Mode, "markers") && trace.Marker != nil {
		size := trace.Marker.Size / 3
		if size <= 0 {
			size = 3
		}
		style := chart.Style{StrokeWidth: chart.Disabled, DotWidth: size}
		if color, ok := trace.Marker.Color.(string); ok {
			style.DotColor = parseColor(color)
		}
		return style
	}

	style := chart.Style{StrokeWidth: 1}
	if trace.Line != nil {
		style.StrokeColor = parseColor(trace.Line.Color)
		if trace.Line.Width > 0 {
			style.StrokeWidth = trace.Line.Width
		}
	}
	return style
}

// parseColor accepts a named color or a #rrggbb value. Unknown names give
// the zero color, which go-chart replaces with its palette.
func parseColor(name string) drawing.Color {
	if strings.HasPrefix(name, "#") {
		return drawing.ColorFromHex(strings.TrimPrefix(name, "#"))
	}
	if hex, ok := namedColors[strings.ToLower(name)]; ok {
		return drawing.ColorFromHex(hex)
	}
	return drawing.Color{}
}
