package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	slogseq "github.com/sokkalf/slog-seq"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

type Options struct {
	Level  slog.Level
	Output io.Writer
	// SeqURL enables the Seq sink when set.
	SeqURL string
}

// SetupLogger builds the process logger and returns a cleanup function that
// flushes the Seq sink.
func SetupLogger(opts Options) (*slog.Logger, func()) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	consoleHandler := slog.NewTextHandler(opts.Output, handlerOpts)

	if opts.SeqURL == "" {
		return slog.New(consoleHandler), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(handlerOpts),
	)
	if seqHandler == nil {
		return slog.New(consoleHandler), func() {}
	}

	multi := &multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}
	return slog.New(multi), func() {
		seqHandler.Close()
	}
}

// WithRunID tags every record of logger with a fresh run id.
func WithRunID(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return logger.With(slog.String("run_id", id)), id
}
