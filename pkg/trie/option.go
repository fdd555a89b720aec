package trie

import (
	"io"
	"log/slog"
)

type Option func(*options)

type options struct {
	delimiter string
	logger    *slog.Logger
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDelimiter sets the segment separator used by NewText.
// An empty delimiter means no delimiter: every rune becomes a token.
func WithDelimiter(delimiter string) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithLogger sets the logger used for debug records about pruning and rejected values.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
