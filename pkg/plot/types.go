package plot

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// TraceType is the kind of trace as understood by the rendering library
type TraceType string

const (
	TraceCandlestick TraceType = "candlestick"
	TraceScatter     TraceType = "scatter"
	TraceBar         TraceType = "bar"
)

// Column is one axis worth of trace data
type Column interface {
	Len() int
}

// Times is a column of timestamps
type Times []time.Time

func (t Times) Len() int { return len(t) }

// Categories is a column of category labels
type Categories []string

func (c Categories) Len() int { return len(c) }

// Values is a numeric column. NaN marks a missing value and encodes as null.
type Values []float64

func (v Values) Len() int { return len(v) }

// MarshalJSON implements json.Marshaler
func (v Values) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(v)*8+2)
	buf = append(buf, '[')
	for i, value := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, value, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

// Line is the stroke of a line trace or of a marker outline
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Marker describes the points of a scatter trace or the fill of bars.
// Color holds either a single color string or one color per point.
type Marker struct {
	Symbol  string  `json:"symbol,omitempty"`
	Color   any     `json:"color,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Line    *Line   `json:"line,omitempty"`
}

// Trace is a single drawable series of a figure
type Trace struct {
	Type        TraceType `json:"type"`
	Name        string    `json:"name,omitempty"`
	X           Column    `json:"x,omitempty"`
	Y           Column    `json:"y,omitempty"`
	Open        Values    `json:"open,omitempty"`
	High        Values    `json:"high,omitempty"`
	Low         Values    `json:"low,omitempty"`
	Close       Values    `json:"close,omitempty"`
	Mode        string    `json:"mode,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Opacity     float64   `json:"opacity,omitempty"`
	Marker      *Marker   `json:"marker,omitempty"`
	Line        *Line     `json:"line,omitempty"`
	XAxis       string    `json:"xaxis,omitempty"`
	YAxis       string    `json:"yaxis,omitempty"`

	row        int
	secondaryY bool
}

// Row returns the 1-based panel the trace was placed in
func (t Trace) Row() int { return t.row }

// SecondaryY reports whether the trace is bound to the secondary y axis of its row
func (t Trace) SecondaryY() bool { return t.secondaryY }

// Title is a positioned text title
type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
	YAnchor string  `json:"yanchor,omitempty"`
}

// Legend placement
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
}

// RangeSlider toggles the range slider under an x axis
type RangeSlider struct {
	Visible bool `json:"visible"`
}

// Axis is the configuration of one x or y axis
type Axis struct {
	Title          *Title       `json:"title,omitempty"`
	Domain         []float64    `json:"domain,omitempty"`
	Anchor         string       `json:"anchor,omitempty"`
	Overlaying     string       `json:"overlaying,omitempty"`
	Side           string       `json:"side,omitempty"`
	Matches        string       `json:"matches,omitempty"`
	ShowTickLabels *bool        `json:"showticklabels,omitempty"`
	GridColor      string       `json:"gridcolor,omitempty"`
	RangeSlider    *RangeSlider `json:"rangeslider,omitempty"`
}

// Layout holds the figure wide settings and every axis keyed by its
// layout name (xaxis, xaxis2, yaxis, yaxis2, ...)
type Layout struct {
	Title        *Title  `json:"title,omitempty"`
	Legend       *Legend `json:"legend,omitempty"`
	Height       int     `json:"height,omitempty"`
	HoverMode    string  `json:"hovermode,omitempty"`
	PlotBgColor  string  `json:"plot_bgcolor,omitempty"`
	PaperBgColor string  `json:"paper_bgcolor,omitempty"`
	Template     string  `json:"-"`

	Axes map[string]*Axis `json:"-"`
}

// MarshalJSON flattens the axes into the layout object
func (l Layout) MarshalJSON() ([]byte, error) {
	type layout Layout
	raw, err := json.Marshal(layout(l))
	if err != nil {
		return nil, err
	}

	if len(l.Axes) == 0 {
		return raw, nil
	}

	fields := make(map[string]json.RawMessage, len(l.Axes)+8)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	for name, axis := range l.Axes {
		encoded, err := json.Marshal(axis)
		if err != nil {
			return nil, err
		}
		fields[name] = encoded
	}

	return json.Marshal(fields)
}
