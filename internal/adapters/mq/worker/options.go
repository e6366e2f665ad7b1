package worker

import "github.com/okian/nameprep/pkg/logger"

// Option configures a Worker.
type Option func(*Worker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *Worker) {
		w.name = name
		w.logger = logger.Get().Named(name)
	}
}

// WithLogger sets the worker logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		w.logger = l
	}
}
