package automaton

import "log/slog"

const defaultPowersetLimit = 20

type options struct {
	name          string
	logger        *slog.Logger
	powersetLimit int
}

// Option configures an automaton at construction.
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		name:          "automaton",
		logger:        slog.New(slog.DiscardHandler),
		powersetLimit: defaultPowersetLimit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the display name used by Describe and in log records.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger routes conversion diagnostics to logger. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPowersetLimit bounds the number of source states ToDFA will expand into 2^n subsets.
func WithPowersetLimit(limit int) Option {
	return func(o *options) {
		o.powersetLimit = limit
	}
}

// derive carries the logger and limit over to an automaton built from this one.
func (o *options) derive(name string) []Option {
	return []Option{WithName(name), WithLogger(o.logger), WithPowersetLimit(o.powersetLimit)}
}
