package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raykavin/tradeplot/internal/config"
	"github.com/raykavin/tradeplot/pkg/core"
	"github.com/raykavin/tradeplot/pkg/feed"
	"github.com/raykavin/tradeplot/pkg/logger"
	"github.com/raykavin/tradeplot/pkg/logger/zerolog"
	"github.com/raykavin/tradeplot/pkg/notification"
	"github.com/raykavin/tradeplot/pkg/plot"
	"github.com/raykavin/tradeplot/pkg/render"
)

// app carries what every command needs
type app struct {
	config *config.Config
	log    logger.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if window != "" {
		cfg.Chart.Window = window
	}

	log, err := zerolog.NewConsole(os.Stderr, zerolog.ConsoleOptions{
		Level:      level,
		TimeLayout: dateTimeLayout,
		Colored:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return &app{config: cfg, log: log}, nil
}

// notifier sends chart warnings to the log, to recorder and to Telegram
// when enabled
func (a *app) notifier(recorder *notification.Recorder) (notification.Notifier, error) {
	notifiers := notification.Multi{recorder, notification.NewLog(a.log)}

	if a.config.Telegram.Enabled {
		telegram, err := notification.NewTelegram(notification.TelegramSettings{
			Token: a.config.Telegram.Token,
			Users: a.config.Telegram.Users,
		}, a.log)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, telegram)
	}

	return notifiers, nil
}

// loadInputs reads the candles and fills, resampled and trimmed per the
// chart settings
func (a *app) loadInputs() ([]core.Candle, core.StrategyData, error) {
	candles, err := feed.ReadCandles(candlesPath)
	if err != nil {
		return nil, core.StrategyData{}, err
	}

	if timeframe := a.config.Chart.Timeframe; timeframe != "" {
		if candles, err = feed.Resample(candles, timeframe); err != nil {
			return nil, core.StrategyData{}, err
		}
	}

	data := core.StrategyData{}
	if tradesPath != "" {
		if data, err = feed.ReadTradeFills(tradesPath); err != nil {
			return nil, core.StrategyData{}, err
		}
	}

	candles, data, err = feed.LastWindow(candles, data, a.config.Chart.Window)
	if err != nil {
		return nil, core.StrategyData{}, err
	}

	a.log.WithFields(map[string]any{
		"candles": len(candles),
		"fills":   len(data.TradeFill),
	}).Debug("inputs loaded")

	return candles, data, nil
}

// buildChart draws the candles chart with every overlay enabled in the
// configuration. Strategy panels are only drawn when the chart has their row.
func (a *app) buildChart(candles []core.Candle, data core.StrategyData, notifier notification.Notifier) *plot.Figure {
	chart := a.config.Chart
	indicators := a.config.Indicators

	graph := plot.NewCandlesGraph(candles,
		plot.WithVolume(chart.Volume),
		plot.WithExtraRows(chart.ExtraRows),
		plot.WithNotifier(notifier),
		plot.WithLogger(a.log),
	)

	graph.AddBuyTrades(data.Buys())
	graph.AddSellTrades(data.Sells())

	if indicators.Bollinger.Enabled {
		graph.AddBollingerBands(indicators.Bollinger.Length, indicators.Bollinger.Std)
	}
	if indicators.EMA.Enabled {
		graph.AddEMA(indicators.EMA.Length)
	}

	if len(data.TradeFill) > 0 {
		if chart.InventoryRow <= graph.Rows() {
			graph.AddBaseInventoryChange(data, plot.OnRow(chart.InventoryRow))
		}
		if chart.TradePnLRow <= graph.Rows() {
			graph.AddTradePnL(data, plot.OnRow(chart.TradePnLRow))
		}
	}

	return graph.Figure()
}

// writeFigure renders fig to path in the format of its extension. Nothing
// is left on disk when rendering fails.
func (a *app) writeFigure(path string, fig *plot.Figure, warnings []string) (err error) {
	var draw func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		draw = func(w io.Writer) error { return render.HTML(w, fig, warnings) }
	case ".png":
		draw = func(w io.Writer) error {
			return render.PNG(w, fig, a.config.Chart.Width, a.config.Chart.Height)
		}
	case ".json":
		draw = func(w io.Writer) error { return render.JSON(w, fig) }
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(path)
		}
	}()

	if err = draw(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
