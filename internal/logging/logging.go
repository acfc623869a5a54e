/*
Copyright The wolauncher Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// LevelFunc reports the minimum level that should currently be emitted.
// It is consulted at log time so flags parsed after logger construction
// still take effect.
type LevelFunc func() slog.Level

// LevelCheckHandler filters records against a LevelFunc before delegating.
type LevelCheckHandler struct {
	handler slog.Handler
	level   LevelFunc
}

// Enabled implements slog.Handler.Enabled
func (h *LevelCheckHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return level >= slog.LevelInfo
	}
	return level >= h.level()
}

// Handle implements slog.Handler.Handle
func (h *LevelCheckHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.WithAttrs
func (h *LevelCheckHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LevelCheckHandler{
		handler: h.handler.WithAttrs(attrs),
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.WithGroup
func (h *LevelCheckHandler) WithGroup(name string) slog.Handler {
	return &LevelCheckHandler{
		handler: h.handler.WithGroup(name),
		level:   h.level,
	}
}

// NewLogger creates a text logger without timestamps whose level is
// evaluated on every record.
func NewLogger(out io.Writer, level LevelFunc) *slog.Logger {
	baseHandler := slog.NewTextHandler(out, &slog.HandlerOptions{
		// The wrapping handler does the filtering.
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	return slog.New(&LevelCheckHandler{
		handler: baseHandler,
		level:   level,
	})
}

// Level maps the debug and quiet switches onto a slog level.
// Quiet wins over debug.
func Level(debug, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case debug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// LoggerSetterGetter is an interface that can set and get a logger
type LoggerSetterGetter interface {
	// SetLogger sets a new slog.Handler
	SetLogger(newHandler slog.Handler)
	// Logger returns the slog.Logger created from the slog.Handler
	Logger() *slog.Logger
}

// LogHolder is embedded by components that log. The zero value discards.
type LogHolder struct {
	logger atomic.Pointer[slog.Logger]
}

// Logger returns the logger for the LogHolder, discarding when none was set.
func (l *LogHolder) Logger() *slog.Logger {
	if lg := l.logger.Load(); lg != nil {
		return lg
	}
	return slog.New(slog.DiscardHandler)
}

// SetLogger sets the logger for the LogHolder. A nil handler discards.
func (l *LogHolder) SetLogger(newHandler slog.Handler) {
	if newHandler == nil {
		l.logger.Store(slog.New(slog.DiscardHandler))
		return
	}
	l.logger.Store(slog.New(newHandler))
}

var _ LoggerSetterGetter = &LogHolder{}
