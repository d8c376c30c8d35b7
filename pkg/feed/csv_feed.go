// Package feed loads the candle and trade fill tables the charts are built from.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/raykavin/tradeplot/pkg/core"
)

// candle columns, with the aliases accepted for the time column
var (
	timeColumns   = []string{"datetime", "time", "timestamp"}
	candleColumns = []string{"open", "high", "low", "close"}
	// headerless files follow the core.Candle.ToSlice layout
	defaultCandleColumns = []string{"time", "open", "high", "low", "close", "volume"}
)

// defaultCandleHeader maps the columns a headerless row of width fields has,
// volume included only when present
func defaultCandleHeader(width int) map[string]int {
	header := make(map[string]int, len(defaultCandleColumns))
	for index, name := range defaultCandleColumns {
		if index < width {
			header[name] = index
		}
	}
	return header
}

// ReadCandles loads a candle table from a CSV file
func ReadCandles(path string) ([]core.Candle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	candles, err := ParseCandles(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candles, nil
}

// ParseCandles reads candles from CSV. The header row is optional; without
// it columns are time, open, high, low, close, volume. Timestamps must be
// strictly increasing.
func ParseCandles(r io.Reader) ([]core.Candle, error) {
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []core.Candle{}, nil
	}

	header, hasHeader := parseHeader(lines[0])
	if !hasHeader {
		header = defaultCandleHeader(len(lines[0]))
	} else {
		lines = lines[1:]
	}

	timeIndex, err := timeColumn(header)
	if err != nil {
		return nil, err
	}
	for _, column := range candleColumns {
		if _, ok := header[column]; !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrMissingColumn, column)
		}
	}

	candles := make([]core.Candle, 0, len(lines))
	for i, line := range lines {
		candle, err := parseCandle(line, header, timeIndex)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		candles = append(candles, candle)
	}

	if err := core.ValidateCandles(candles); err != nil {
		return nil, err
	}
	return candles, nil
}

func parseCandle(line []string, header map[string]int, timeIndex int) (core.Candle, error) {
	var (
		candle core.Candle
		err    error
	)

	if candle.Time, err = ParseTime(line[timeIndex]); err != nil {
		return core.Candle{}, err
	}
	if candle.Open, err = parseFloat(line, header, "open"); err != nil {
		return core.Candle{}, err
	}
	if candle.High, err = parseFloat(line, header, "high"); err != nil {
		return core.Candle{}, err
	}
	if candle.Low, err = parseFloat(line, header, "low"); err != nil {
		return core.Candle{}, err
	}
	if candle.Close, err = parseFloat(line, header, "close"); err != nil {
		return core.Candle{}, err
	}
	if _, ok := header["volume"]; ok {
		if candle.Volume, err = parseFloat(line, header, "volume"); err != nil {
			return core.Candle{}, err
		}
	}
	if index, ok := header["pair"]; ok {
		candle.Pair = line[index]
	}

	return candle, nil
}

// parseHeader maps column names to their index. A first row starting with a
// timestamp is data, not a header.
func parseHeader(row []string) (map[string]int, bool) {
	if _, err := ParseTime(row[0]); err == nil {
		return nil, false
	}

	header := make(map[string]int, len(row))
	for index, name := range row {
		header[strings.ToLower(strings.TrimSpace(name))] = index
	}
	return header, true
}

func timeColumn(header map[string]int) (int, error) {
	for _, name := range timeColumns {
		if index, ok := header[name]; ok {
			return index, nil
		}
	}
	return 0, fmt.Errorf("%w: datetime", core.ErrMissingColumn)
}

func parseFloat(line []string, header map[string]int, column string) (float64, error) {
	index := header[column]
	if index >= len(line) {
		return 0, fmt.Errorf("%w: %s", core.ErrMissingColumn, column)
	}

	value := strings.TrimSpace(line[index])
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return parsed, nil
}

// time layouts accepted besides unix timestamps
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses unix seconds, unix milliseconds or a date time string
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		// millisecond timestamps have 13 digits
		if unix > 1e12 || unix < -1e12 {
			return time.UnixMilli(unix).UTC(), nil
		}
		return time.Unix(unix, 0).UTC(), nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q", value)
}
