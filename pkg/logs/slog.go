package logs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mchesser/termion/pkg"
	"github.com/mchesser/termion/pkg/term"
)

const maxAttrLen = 80

type termHandler struct {
	t     *term.Term
	attrs []slog.Attr
}

func newTermHandler(t *term.Term) *termHandler {
	return &termHandler{t: t}
}

// NewTermLogger returns a logger whose records are printed by t, so that
// they follow its color and debug settings.
func NewTermLogger(t *term.Term) *slog.Logger {
	return slog.New(newTermHandler(t))
}

func (h *termHandler) Handle(ctx context.Context, r slog.Record) error {
	msg := r.Message
	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		var builder strings.Builder
		builder.WriteString(msg)
		opened := false
		write := func(a slog.Attr) bool {
			if !opened {
				builder.WriteString(" {")
				opened = true
			} else {
				builder.WriteString(", ")
			}
			builder.WriteString(pkg.Truncate(a.String(), maxAttrLen))
			return true
		}
		for _, a := range h.attrs {
			write(a)
		}
		r.Attrs(write)
		builder.WriteString("}")
		msg = builder.String()
	}

	switch {
	case r.Level < slog.LevelInfo:
		_, err := h.t.Debug(msg)
		return err
	case r.Level < slog.LevelWarn:
		_, err := h.t.Info(msg)
		return err
	case r.Level < slog.LevelError:
		_, err := h.t.Warn(msg)
		return err
	default:
		_, err := h.t.Error(msg)
		return err
	}
}

func (h *termHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < slog.LevelInfo {
		return h.t.DoDebug()
	}
	return true
}

func (h *termHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &termHandler{t: h.t, attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)}
}

func (h *termHandler) WithGroup(name string) slog.Handler {
	// Groups are not supported in this implementation
	return h
}
