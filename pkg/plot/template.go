package plot

// Layout templates known by name
const (
	TemplatePlotly      = "plotly"
	TemplatePlotlyWhite = "plotly_white"
)

// ApplyTemplate sets the layout colors of a named template. Unknown names
// leave the layout untouched.
func ApplyTemplate(layout *Layout, name string) {
	switch name {
	case TemplatePlotlyWhite:
		layout.Template = name
		layout.PlotBgColor = "white"
		layout.PaperBgColor = "white"
		for _, axis := range layout.Axes {
			axis.GridColor = "#EBF0F8"
		}
	case TemplatePlotly:
		layout.Template = name
		layout.PlotBgColor = "#E5ECF6"
		layout.PaperBgColor = "white"
	}
}
