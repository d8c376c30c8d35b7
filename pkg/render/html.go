// Package render turns figures into standalone pages, static images and a
// live preview server.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/raykavin/tradeplot/pkg/plot"
)

// PlotlyURL is the script the pages load to draw figures
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed assets
var assets embed.FS

// Page renders figures into a self contained HTML document
type Page struct {
	template *template.Template
	script   template.JS
}

// PageOption configures a Page
type PageOption func(*pageConfig)

type pageConfig struct {
	debug bool
}

// WithDebug keeps the page script readable instead of minified
func WithDebug() PageOption {
	return func(config *pageConfig) {
		config.debug = true
	}
}

// NewPage parses the page template and transpiles its script
func NewPage(options ...PageOption) (*Page, error) {
	var config pageConfig
	for _, option := range options {
		option(&config)
	}

	page := &Page{}

	var err error
	page.template, err = template.ParseFS(assets, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	source, err := assets.ReadFile("assets/chart.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read chart.js: %w", err)
	}

	result := api.Transform(string(source), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !config.debug,
		MinifyIdentifiers: !config.debug,
		MinifyWhitespace:  !config.debug,
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", result.Errors)
	}

	page.script = template.JS(result.Code)
	return page, nil
}

type pageData struct {
	Title     string
	PlotlyURL string
	Figure    template.JS
	Script    template.JS
	Warnings  []string
	Live      string
}

// Render writes the page of fig. Warnings are shown above the chart.
func (p *Page) Render(w io.Writer, fig *plot.Figure, warnings []string) error {
	return p.render(w, fig, warnings, "")
}

// render with a non empty live name makes the page follow updates of that
// figure over the preview server socket
func (p *Page) render(w io.Writer, fig *plot.Figure, warnings []string, live string) error {
	encoded, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}

	title := "tradeplot"
	if fig.Layout != nil && fig.Layout.Title != nil && fig.Layout.Title.Text != "" {
		title = fig.Layout.Title.Text
	}

	return p.template.Execute(w, pageData{
		Title:     title,
		PlotlyURL: PlotlyURL,
		Figure:    template.JS(encoded),
		Script:    p.script,
		Warnings:  warnings,
		Live:      live,
	})
}

// HTML writes a standalone page of fig
func HTML(w io.Writer, fig *plot.Figure, warnings []string, options ...PageOption) error {
	page, err := NewPage(options...)
	if err != nil {
		return err
	}
	return page.Render(w, fig, warnings)
}

// JSON writes the figure as Plotly JSON
func JSON(w io.Writer, fig *plot.Figure) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fig)
}
