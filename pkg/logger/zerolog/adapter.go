// Package zerolog backs logger.Logger with zerolog.
package zerolog

import (
	"fmt"

	"github.com/raykavin/tradeplot/pkg/logger"
	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog.Logger as a logger.Logger
type Adapter struct {
	zl zerolog.Logger
}

var _ logger.Logger = Adapter{}

// New wraps zl
func New(zl zerolog.Logger) Adapter {
	return Adapter{zl: zl}
}

// Nop returns an adapter that discards every entry
func Nop() Adapter {
	return Adapter{zl: zerolog.Nop()}
}

func (a Adapter) Debug(args ...any) { a.zl.Debug().Msg(fmt.Sprint(args...)) }
func (a Adapter) Info(args ...any)  { a.zl.Info().Msg(fmt.Sprint(args...)) }
func (a Adapter) Warn(args ...any)  { a.zl.Warn().Msg(fmt.Sprint(args...)) }
func (a Adapter) Error(args ...any) { a.zl.Error().Msg(fmt.Sprint(args...)) }

func (a Adapter) Debugf(format string, args ...any) { a.zl.Debug().Msgf(format, args...) }
func (a Adapter) Infof(format string, args ...any)  { a.zl.Info().Msgf(format, args...) }
func (a Adapter) Warnf(format string, args ...any)  { a.zl.Warn().Msgf(format, args...) }
func (a Adapter) Errorf(format string, args ...any) { a.zl.Error().Msgf(format, args...) }

func (a Adapter) WithField(key string, value any) logger.Logger {
	return Adapter{zl: a.zl.With().Interface(key, value).Logger()}
}

func (a Adapter) WithFields(fields map[string]any) logger.Logger {
	return Adapter{zl: a.zl.With().Fields(fields).Logger()}
}

func (a Adapter) WithError(err error) logger.Logger {
	return Adapter{zl: a.zl.With().Stack().Err(err).Logger()}
}
