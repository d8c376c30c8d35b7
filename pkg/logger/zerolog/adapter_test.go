package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := New(zerolog.New(&buf))

	log.WithFields(map[string]any{"pair": "BTCUSDT"}).
		WithField("rows", 4).
		WithError(errors.New("boom")).
		Warn("not enough data")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "BTCUSDT", entry["pair"])
	assert.Equal(t, 4.0, entry["rows"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "not enough data", entry["message"])
}

func TestAdapter_Formatted(t *testing.T) {
	var buf bytes.Buffer
	New(zerolog.New(&buf)).Errorf("row %d out of range", 5)
	assert.Contains(t, buf.String(), `"message":"row 5 out of range"`)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewConsole(&buf, ConsoleOptions{Level: "info", JSON: true})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("figure ready")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"figure ready"`)

	buf.Reset()
	log, err = NewConsole(&buf, ConsoleOptions{Level: "debug", TimeLayout: "15:04:05"})
	require.NoError(t, err)
	log.Warn("bands skipped")
	assert.Contains(t, buf.String(), "[WAR]")
	assert.Contains(t, buf.String(), "bands skipped")

	_, err = NewConsole(&buf, ConsoleOptions{Level: "loud"})
	require.Error(t, err)
}

func TestNewConsole_Caller(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewConsole(&buf, ConsoleOptions{Level: "info", JSON: true})
	require.NoError(t, err)

	log.Info("figure ready")
	log.WithField("rows", 4).Warnf("row %d out of range", 5)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		caller, _ := entry["caller"].(string)
		assert.True(t, strings.HasPrefix(filepath.Base(caller), "adapter_test.go:"), caller)
	}
}

func TestNewConsole_NoColor(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewConsole(&buf, ConsoleOptions{Level: "info", TimeLayout: "15:04:05"})
	require.NoError(t, err)

	log.Error("render failed")
	assert.Contains(t, buf.String(), "[ERR]")
	assert.Contains(t, buf.String(), "adapter_test.go")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestFormatCaller(t *testing.T) {
	plain := palette{}
	assert.Empty(t, plain.formatCaller(nil))
	assert.Equal(t, "[indicators.go   :  42]", plain.formatCaller("/src/pkg/plot/indicators.go:42"))

	colored := palette{colored: true}
	assert.Contains(t, colored.formatCaller("/src/pkg/plot/indicators.go:42"), "indicators.go")
	assert.Contains(t, colored.formatLevel("warn"), "[WAR]")
}
