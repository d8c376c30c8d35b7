package plot

import (
	"errors"
	"fmt"
)

var ErrRowOutOfRange = errors.New("row out of range")

// secondaryDomainEnd leaves room on the right for the secondary y axes
const secondaryDomainEnd = 0.94

// Figure is a set of traces laid out over one or more stacked rows.
// Every row has a primary and a secondary y axis and all rows share the
// x axis of the bottom row.
type Figure struct {
	Data   []*Trace `json:"data"`
	Layout *Layout  `json:"layout"`

	rows     int
	heights  []float64
	subplots bool
}

// NewFigure creates a single panel figure without secondary axes
func NewFigure() *Figure {
	return &Figure{
		Data:    make([]*Trace, 0),
		Layout:  &Layout{Axes: map[string]*Axis{}},
		rows:    1,
		heights: []float64{1},
	}
}

// NewSubplots creates a figure with rows stacked top to bottom. heights are
// relative weights, one per row; spacing is the vertical gap between rows as
// a fraction of the plot height.
func NewSubplots(rows int, heights []float64, spacing float64) *Figure {
	if rows < 1 {
		rows = 1
	}
	if len(heights) != rows {
		heights = make([]float64, rows)
		for i := range heights {
			heights[i] = 1
		}
	}

	fig := &Figure{
		Data:     make([]*Trace, 0),
		Layout:   &Layout{Axes: make(map[string]*Axis, rows*3)},
		rows:     rows,
		heights:  append([]float64(nil), heights...),
		subplots: true,
	}

	domains := rowDomains(heights, spacing)
	bottom := axisRef("x", rows)
	hidden := false

	for row := 1; row <= rows; row++ {
		x := &Axis{
			Domain: []float64{0, secondaryDomainEnd},
			Anchor: primaryYRef(row),
		}
		if row < rows {
			x.Matches = bottom
			x.ShowTickLabels = &hidden
		}
		fig.Layout.Axes[axisName("x", row)] = x

		fig.Layout.Axes[axisName("y", 2*row-1)] = &Axis{
			Domain: domains[row-1],
			Anchor: axisRef("x", row),
		}
		fig.Layout.Axes[axisName("y", 2*row)] = &Axis{
			Anchor:     axisRef("x", row),
			Overlaying: primaryYRef(row),
			Side:       "right",
		}
	}

	return fig
}

// rowDomains splits the vertical space among rows, first row on top
func rowDomains(heights []float64, spacing float64) [][]float64 {
	var total float64
	for _, h := range heights {
		total += h
	}

	available := 1 - spacing*float64(len(heights)-1)
	domains := make([][]float64, len(heights))
	top := 1.0
	for i, h := range heights {
		size := h / total * available
		bottom := top - size
		if bottom < 0 {
			bottom = 0
		}
		domains[i] = []float64{bottom, top}
		top = bottom - spacing
	}
	return domains
}

// Rows returns the number of panels
func (f *Figure) Rows() int { return f.rows }

// RowHeights returns the relative row heights, top to bottom
func (f *Figure) RowHeights() []float64 {
	return append([]float64(nil), f.heights...)
}

// AddTrace places a trace in a row, bound to the primary or secondary y axis
func (f *Figure) AddTrace(trace *Trace, row int, secondaryY bool) error {
	if row < 1 || row > f.rows {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrRowOutOfRange, row, f.rows)
	}

	trace.row = row
	trace.secondaryY = secondaryY

	// single panel figures keep the default axes
	if f.subplots {
		trace.XAxis = axisRef("x", row)
		trace.YAxis = primaryYRef(row)
		if secondaryY {
			trace.YAxis = axisRef("y", 2*row)
		}
	}

	f.Data = append(f.Data, trace)
	return nil
}

// TracesInRow returns the traces placed in a row, in insertion order
func (f *Figure) TracesInRow(row int) []*Trace {
	traces := make([]*Trace, 0)
	for _, trace := range f.Data {
		if trace.row == row {
			traces = append(traces, trace)
		}
	}
	return traces
}

// UpdateYAxis sets the title of the primary or secondary y axis of a row
func (f *Figure) UpdateYAxis(row int, secondaryY bool, title string) error {
	if row < 1 || row > f.rows {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrRowOutOfRange, row, f.rows)
	}

	f.YAxis(row, secondaryY).Title = &Title{Text: title}
	return nil
}

// UpdateXAxis sets the title of the x axis of a row
func (f *Figure) UpdateXAxis(row int, title string) error {
	if row < 1 || row > f.rows {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrRowOutOfRange, row, f.rows)
	}
	f.axis(axisName("x", row)).Title = &Title{Text: title}
	return nil
}

// XAxis returns the x axis of a row, creating it when missing
func (f *Figure) XAxis(row int) *Axis {
	return f.axis(axisName("x", row))
}

// YAxis returns the primary or secondary y axis of a row, creating it when missing
func (f *Figure) YAxis(row int, secondaryY bool) *Axis {
	if !f.subplots || !secondaryY {
		return f.axis(axisName("y", 2*row-1))
	}
	return f.axis(axisName("y", 2*row))
}

func (f *Figure) axis(name string) *Axis {
	if f.Layout.Axes == nil {
		f.Layout.Axes = map[string]*Axis{}
	}
	axis, ok := f.Layout.Axes[name]
	if !ok {
		axis = &Axis{}
		f.Layout.Axes[name] = axis
	}
	return axis
}

func primaryYRef(row int) string {
	return axisRef("y", 2*row-1)
}

// axisRef is the name a trace uses to reference an axis: x, x2, y3...
func axisRef(prefix string, index int) string {
	if index == 1 {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, index)
}

// axisName is the layout key of an axis: xaxis, xaxis2, yaxis3...
func axisName(prefix string, index int) string {
	if index == 1 {
		return prefix + "axis"
	}
	return fmt.Sprintf("%saxis%d", prefix, index)
}
