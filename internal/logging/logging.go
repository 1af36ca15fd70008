// ABOUTME: Structured logging for the CLI and MCP server
// ABOUTME: Wraps slog with a colored text handler and a runtime level

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const logTimeLayout = "15:04:05.000"

// levelVar holds the current log level; defaults to Warn.
var levelVar slog.LevelVar

func init() {
	levelVar.Set(slog.LevelWarn)
}

// ColorHandler prints "time LEVEL message" with colors, then key=value attrs.
type ColorHandler struct {
	handler slog.Handler
	writer  io.Writer
	mu      *sync.Mutex
}

// NewColorHandler creates a handler writing to w at the package level.
func NewColorHandler(w io.Writer) *ColorHandler {
	return &ColorHandler{
		handler: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       &levelVar,
			ReplaceAttr: replaceAttr,
		}),
		writer: w,
		mu:     &sync.Mutex{},
	}
}

func (h *ColorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	var label *color.Color
	switch {
	case r.Level >= slog.LevelError:
		label = color.New(color.FgRed, color.Bold)
	case r.Level >= slog.LevelWarn:
		label = color.New(color.FgYellow, color.Bold)
	case r.Level >= slog.LevelInfo:
		label = color.New(color.FgBlue)
	default:
		label = color.New(color.FgHiBlack)
	}
	faint := color.New(color.FgHiBlack)
	msg := color.New(color.FgCyan)

	h.mu.Lock()
	defer h.mu.Unlock()

	// Prefix is printed here; the text handler only writes the attrs.
	fmt.Fprintf(h.writer, "%s %s %s ",
		faint.Sprint(r.Time.Format(logTimeLayout)),
		label.Sprint(r.Level.String()),
		msg.Sprint(r.Message),
	)
	return h.handler.Handle(ctx, r)
}

func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{handler: h.handler.WithAttrs(attrs), writer: h.writer, mu: h.mu}
}

func (h *ColorHandler) WithGroup(name string) slog.Handler {
	return &ColorHandler{handler: h.handler.WithGroup(name), writer: h.writer, mu: h.mu}
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey, slog.LevelKey, slog.MessageKey:
		return slog.Attr{}
	}
	if a.Key == "error" || a.Key == "err" {
		a.Value = slog.StringValue(color.RedString("%s", a.Value.String()))
	}
	return a
}

// ParseLevel maps a level name to a slog level.
// Unknown names fall back to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// Setup installs a colored logger on w as the slog default.
func Setup(w io.Writer, level string) *slog.Logger {
	levelVar.Set(ParseLevel(level))
	logger := slog.New(NewColorHandler(w))
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the level of every logger created by this package.
func SetLevel(level string) {
	levelVar.Set(ParseLevel(level))
}

// Level returns the current level.
func Level() slog.Level {
	return levelVar.Level()
}
