package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/raykavin/tradeplot/pkg/feed"
	"github.com/raykavin/tradeplot/pkg/notification"
	"github.com/raykavin/tradeplot/pkg/plot"
	"github.com/raykavin/tradeplot/pkg/render"
	"github.com/raykavin/tradeplot/pkg/report"
	"github.com/spf13/cobra"
	"github.com/xhit/go-str2duration/v2"
)

const bootstrapSamples = 10000

func runRender(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	candles, data, err := a.loadInputs()
	if err != nil {
		return err
	}

	recorder := notification.NewRecorder()
	notifier, err := a.notifier(recorder)
	if err != nil {
		return err
	}

	fig := a.buildChart(candles, data, notifier)
	if err := a.writeFigure(outputPath, fig, recorder.Messages()); err != nil {
		return err
	}

	a.log.WithField("output", outputPath).Info("chart written")
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	data, err := feed.ReadTradeFills(tradesPath)
	if err != nil {
		return err
	}

	return a.writeSummary(cmd.OutOrStdout(), data, bins, confidence)
}

// writeSummary prints the trade table, the net amount histogram and the
// confidence interval of the realized PnL per trade
func (a *app) writeSummary(out io.Writer, data core.StrategyData, histogramBins int, level float64) error {
	summary := report.NewTradeSummary(data)

	interval, err := summary.PnLInterval(bootstrapSamples, level)
	if err != nil {
		return fmt.Errorf("invalid --confidence: %w", err)
	}

	fmt.Fprintln(out, summary.String())
	fmt.Fprintln(out, "------ NET AMOUNT -------")
	if err := summary.Histogram(out, histogramBins); err != nil {
		return err
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "------ CONFIDENCE INTERVAL (%.0f%%) -------\n", level*100)
	fmt.Fprintf(out, "PNL PER TRADE: %.4f (%.4f ~ %.4f)\n", interval.Mean, interval.Lower, interval.Upper)

	a.log.WithFields(map[string]any{
		"trades":     summary.Trades(),
		"confidence": level,
	}).Debug("summary written")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	server, err := render.NewServer(a.log)
	if err != nil {
		return err
	}

	if err := a.publish(server); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if reload != "" {
		interval, err := str2duration.ParseDuration(reload)
		if err != nil {
			return fmt.Errorf("invalid reload interval %q: %w", reload, err)
		}
		go a.watch(ctx, server, interval)
	}

	if port == 0 {
		port = a.config.Server.Port
	}
	return server.ListenAndServe(ctx, fmt.Sprintf("localhost:%d", port))
}

// publish registers the candles chart and, when both sides traded, the
// summary charts
func (a *app) publish(server *render.Server) error {
	candles, data, err := a.loadInputs()
	if err != nil {
		return err
	}

	recorder := notification.NewRecorder()
	notifier, err := a.notifier(recorder)
	if err != nil {
		return err
	}

	server.Register("candles", a.buildChart(candles, data, notifier), recorder.Messages())

	for name, build := range map[string]func() (*plot.Figure, error){
		"volume":   func() (*plot.Figure, error) { return plot.VolumeOfTrades(data) },
		"quantity": func() (*plot.Figure, error) { return plot.QuantityOfTrades(data) },
	} {
		fig, err := build()
		if err != nil {
			a.log.WithError(err).Warnf("%s chart not available", name)
			continue
		}
		server.Register(name, fig, nil)
	}

	return nil
}

// watch republishes the charts whenever an input file changes
func (a *app) watch(ctx context.Context, server *render.Server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := a.modTime()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		current := a.modTime()
		if !current.After(last) {
			continue
		}
		last = current

		if err := a.publish(server); err != nil {
			a.log.WithError(err).Error("failed to reload charts")
			continue
		}
		a.log.Info("charts reloaded")
	}
}

// modTime returns the latest modification time of the input files
func (a *app) modTime() time.Time {
	var latest time.Time
	for _, path := range []string{candlesPath, tradesPath} {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest
}
