package model

import (
	"log/slog"

	"github.com/arthur-debert/tamodel/ids"
)

// Option configures a Workspace and the projects it loads.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes engine and model log records to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) store(name string) []ids.StoreOption {
	return []ids.StoreOption{ids.WithName(name), ids.WithLogger(o.logger)}
}
