package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// Command line flags
var (
	// persistent flags
	configPath string
	logLevel   string
	window     string

	// input flags
	candlesPath string
	tradesPath  string

	// render flags
	outputPath string

	// summary flags
	bins       int
	confidence float64

	// serve flags
	port   int
	reload string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tradeplot",
		Short:        "Charts of candles and strategy trade fills",
		Version:      "1.0.0",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (e.g. ./tradeplot.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides the configuration (e.g. debug)")
	rootCmd.PersistentFlags().StringVar(&window, "last", "", "Only chart the trailing window (e.g. 7d, 12h)")

	rootCmd.AddCommand(buildRenderCmd())
	rootCmd.AddCommand(buildSummaryCmd())
	rootCmd.AddCommand(buildServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command, candlesRequired bool) {
	cmd.Flags().StringVar(&candlesPath, "candles", "", "Candles CSV file (e.g. ./btc-1h.csv)")
	cmd.Flags().StringVar(&tradesPath, "trades", "", "Trade fills CSV file (e.g. ./trades.csv)")
	if candlesRequired {
		cmd.MarkFlagRequired("candles")
	}
}

func buildRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the candles chart to a file",
		Long:  "Render the candles chart to a file. The output extension picks the format: .html, .png or .json.",
		RunE:  runRender,
	}

	addInputFlags(renderCmd, true)
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (e.g. ./chart.html)")
	renderCmd.MarkFlagRequired("output")

	return renderCmd
}

func buildSummaryCmd() *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a summary of the trade fills",
		RunE:  runSummary,
	}

	summaryCmd.Flags().StringVar(&tradesPath, "trades", "", "Trade fills CSV file (e.g. ./trades.csv)")
	summaryCmd.Flags().IntVar(&bins, "bins", 15, "Histogram bins")
	summaryCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level of the PnL interval")
	summaryCmd.MarkFlagRequired("trades")

	return summaryCmd
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the charts in the browser",
		RunE:  runServe,
	}

	addInputFlags(serveCmd, true)
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port, overrides the configuration")
	serveCmd.Flags().StringVar(&reload, "reload", "", "Reload the input files when they change, checking every interval (e.g. 2s)")

	return serveCmd
}
