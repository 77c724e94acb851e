package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Option func(*options)

type options struct {
	level   string
	console bool
	sinks   []io.Writer
}

func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithConsole 開發環境用的可讀輸出
func WithConsole(console bool) Option {
	return func(o *options) {
		o.console = console
	}
}

// WithSink 額外的輸出, 例如 kafka
func WithSink(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.sinks = append(o.sinks, w)
		}
	}
}

func New(service string, opts ...Option) *zerolog.Logger {
	o := &options{level: "info"}
	for _, opt := range opts {
		opt(o)
	}

	level, err := zerolog.ParseLevel(o.level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var stdout io.Writer = os.Stdout
	if o.console {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	var w io.Writer = stdout
	if len(o.sinks) > 0 {
		w = zerolog.MultiLevelWriter(append([]io.Writer{stdout}, o.sinks...)...)
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Str("service", service).Logger()
	return &l
}
