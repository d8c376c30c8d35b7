package zerolog

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// ConsoleOptions configures NewConsole
type ConsoleOptions struct {
	Level      string // trace, debug, info, warn or error
	TimeLayout string
	Colored    bool
	JSON       bool // raw JSON lines instead of the console format
}

const (
	messageWidth = 60
	callerWidth  = 16
)

type colorFunc func(string, ...interface{}) string

var levelLabels = map[string]colorFunc{
	zerolog.LevelTraceValue: term.Cyanf,
	zerolog.LevelDebugValue: term.Cyanf,
	zerolog.LevelInfoValue:  term.Greenf,
	zerolog.LevelWarnValue:  term.Yellowf,
	zerolog.LevelErrorValue: term.Redf,
	zerolog.LevelFatalValue: term.Redf,
}

// palette applies the goterm colors, or plain formatting when disabled
type palette struct {
	colored bool
}

func (p palette) paint(color colorFunc, format string, args ...interface{}) string {
	if !p.colored {
		return fmt.Sprintf(format, args...)
	}
	return color(format, args...)
}

// NewConsole builds a logger writing to out, colored unless disabled
func NewConsole(out io.Writer, options ConsoleOptions) (Adapter, error) {
	level, err := zerolog.ParseLevel(options.Level)
	if err != nil {
		return Adapter{}, err
	}
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer = out
	if !options.JSON {
		p := palette{colored: options.Colored}
		writer = zerolog.ConsoleWriter{
			Out:           out,
			NoColor:       !options.Colored,
			FormatLevel:   p.formatLevel,
			FormatMessage: p.formatMessage,
			FormatCaller:  p.formatCaller,
			FormatTimestamp: func(i interface{}) string {
				return p.formatTimestamp(i, options.TimeLayout)
			},
		}
	}

	// one extra frame for the Adapter method between the call site and zerolog
	zl := zerolog.New(writer).Level(level).With().
		Timestamp().
		CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).
		Logger()
	return New(zl), nil
}

func (p palette) formatLevel(i interface{}) string {
	level, _ := i.(string)
	color, ok := levelLabels[level]
	if !ok {
		return p.paint(term.Whitef, "[???]")
	}
	return p.paint(color, "[%s]", strings.ToUpper(level[:3]))
}

func (p palette) formatMessage(i interface{}) string {
	message, _ := i.(string)
	return p.paint(term.Whitef, "> %-*s", messageWidth, message)
}

// formatCaller keeps the file name and line of the caller
func (p palette) formatCaller(i interface{}) string {
	caller, _ := i.(string)
	if caller == "" {
		return ""
	}

	file, line, _ := strings.Cut(filepath.Base(caller), ":")
	if len(file) > callerWidth {
		file = file[:callerWidth]
	}
	return p.paint(term.Yellowf, "[%-*s:%4s]", callerWidth, file, line)
}

func (p palette) formatTimestamp(i interface{}, layout string) string {
	raw := fmt.Sprint(i)
	if layout != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			raw = ts.Local().Format(layout)
		}
	}
	return p.paint(term.Cyanf, "[%s]", raw)
}
