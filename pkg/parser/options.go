package parser

import "log/slog"

// DefaultMaxDepth bounds the nesting of parenthesized queries and
// expressions.
const DefaultMaxDepth = 128

type options struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a parser.
type Option func(*options)

// WithLogger sets the logger used for debug output about dropped constructs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
