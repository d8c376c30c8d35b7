package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raykavin/tradeplot/internal/config"
	"github.com/raykavin/tradeplot/pkg/feed"
	"github.com/raykavin/tradeplot/pkg/logger/zerolog"
	"github.com/raykavin/tradeplot/pkg/notification"
	"github.com/raykavin/tradeplot/pkg/plot"
	"github.com/raykavin/tradeplot/pkg/render"
	"github.com/raykavin/tradeplot/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	candles := []string{"datetime,open,high,low,close,volume"}
	for i := 0; i < 30; i++ {
		at := start.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
		price := 100 + float64(i%5)
		candles = append(candles, fmt.Sprintf("%s,%g,%g,%g,%g,10", at, price, price+2, price-2, price+1))
	}

	candlesPath = filepath.Join(dir, "candles.csv")
	require.NoError(t, os.WriteFile(candlesPath, []byte(strings.Join(candles, "\n")), 0o600))

	tradesPath = filepath.Join(dir, "trades.csv")
	require.NoError(t, os.WriteFile(tradesPath, []byte(strings.Join([]string{
		"timestamp,trade_type,price,amount,realized_trade_pnl",
		"2024-01-01T02:30:00Z,BUY,100,1,0",
		"2024-01-01T10:30:00Z,SELL,104,1,4",
	}, "\n")), 0o600))
}

func testApp(t *testing.T) *app {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &app{config: cfg, log: zerolog.Nop()}
}

func TestApp_BuildChart(t *testing.T) {
	writeInputs(t)
	a := testApp(t)

	candles, data, err := a.loadInputs()
	require.NoError(t, err)
	require.Len(t, candles, 30)
	require.Len(t, data.TradeFill, 2)

	recorder := notification.NewRecorder()
	fig := a.buildChart(candles, data, recorder)

	assert.Equal(t, 4, fig.Rows())
	assert.Empty(t, recorder.Messages())
	// candles, buys, sells, three bands, ema
	assert.Len(t, fig.TracesInRow(1), 7)
	assert.Len(t, fig.TracesInRow(2), 1)
	assert.Len(t, fig.TracesInRow(3), 2)
	assert.Len(t, fig.TracesInRow(4), 2)
}

func TestApp_BuildChart_NoStrategyRows(t *testing.T) {
	writeInputs(t)
	a := testApp(t)
	a.config.Chart.ExtraRows = 0
	a.config.Indicators.EMA.Length = 50

	candles, data, err := a.loadInputs()
	require.NoError(t, err)

	recorder := notification.NewRecorder()
	fig := a.buildChart(candles, data, recorder)

	assert.Equal(t, 2, fig.Rows())
	assert.Equal(t, []string{"Not enough data to calculate EMA"}, recorder.Messages())
}

func TestApp_LoadInputs_Window(t *testing.T) {
	writeInputs(t)
	a := testApp(t)
	a.config.Chart.Window = "12h"

	candles, data, err := a.loadInputs()
	require.NoError(t, err)
	assert.Len(t, candles, 12)
	assert.Empty(t, data.TradeFill)
}

func TestApp_WriteFigure(t *testing.T) {
	writeInputs(t)
	a := testApp(t)

	candles, data, err := a.loadInputs()
	require.NoError(t, err)
	fig := a.buildChart(candles, data, notification.NewRecorder())

	dir := t.TempDir()
	for _, name := range []string{"chart.html", "chart.png", "chart.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, a.writeFigure(path, fig, nil), name)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}

	svg := filepath.Join(dir, "chart.svg")
	require.Error(t, a.writeFigure(svg, fig, nil))
	assert.NoFileExists(t, svg)

	empty := filepath.Join(dir, "empty.png")
	require.ErrorIs(t, a.writeFigure(empty, plot.NewFigure(), nil), render.ErrNothingToDraw)
	assert.NoFileExists(t, empty)
}

func TestApp_WriteSummary(t *testing.T) {
	writeInputs(t)
	a := testApp(t)

	data, err := feed.ReadTradeFills(tradesPath)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, a.writeSummary(&out, data, 5, 0.9))
	assert.Contains(t, out.String(), "CONFIDENCE INTERVAL (90%)")
	assert.Contains(t, out.String(), "PNL PER TRADE")

	out.Reset()
	err = a.writeSummary(&out, data, 5, 95)
	require.ErrorIs(t, err, report.ErrInvalidConfidence)
	assert.Empty(t, out.String())
}
