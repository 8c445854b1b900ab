package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// pvHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<runID>\t<message>\t<key=value ...>
type pvHandler struct {
	w     io.Writer
	runID string
	attrs []slog.Attr
}

func (h *pvHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *pvHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	level := r.Level.String()

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, level, h.runID, r.Message)
	if err != nil {
		return err
	}

	// Write pre-set attrs.
	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}

	// Write per-record attrs.
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *pvHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &pvHandler{
		w:     h.w,
		runID: h.runID,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *pvHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger writing to logDir/<name>.log with
// size-based rotation. The terminal stays reserved for the progress
// indicator and tables, so nothing is mirrored to stderr. The returned
// closer flushes the rotating file.
func newLogger(logDir, name, runID string) (*slog.Logger, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, name+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
	}
	handler := &pvHandler{w: rotator, runID: runID}
	return slog.New(handler), rotator
}

// slogAdapter wraps *slog.Logger to satisfy the pv.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
