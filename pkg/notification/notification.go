// Package notification provides the surfaces chart warnings are delivered to
package notification

import (
	"sync"

	"github.com/raykavin/tradeplot/pkg/logger"
)

// Notifier receives user-visible warnings raised while building charts
type Notifier interface {
	Warn(message string)
}

// Log writes warnings to a logger
type Log struct {
	log logger.Logger
}

// NewLog creates a notifier that logs warnings at warn level
func NewLog(log logger.Logger) *Log {
	return &Log{log: log}
}

// Warn implements Notifier
func (l *Log) Warn(message string) {
	l.log.Warn(message)
}

// Recorder keeps every warning in memory, in arrival order
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Warn implements Notifier
func (r *Recorder) Warn(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the recorded warnings
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Multi fans a warning out to several notifiers
type Multi []Notifier

// Warn implements Notifier
func (m Multi) Warn(message string) {
	for _, n := range m {
		n.Warn(message)
	}
}
