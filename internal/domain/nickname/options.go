package nickname

import (
	"github.com/okian/nameprep/internal/domain/dedupe"
	"github.com/okian/nameprep/pkg/logger"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithMinCondProb sets the minimum conditional probability for an
// observation to survive the confidence filter.
func WithMinCondProb(p float64) Option {
	return func(b *Builder) {
		if p >= 0 && p <= 1 {
			b.minCondProb = p
		}
	}
}

// WithMinGroupCount sets the minimum number of distinct observations a name
// group needs before it is a meaningful canonical target.
func WithMinGroupCount(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.minGroupCount = n
		}
	}
}

// WithMinGroupLen sets the minimum name-group length; shorter groups are too
// generic to keep.
func WithMinGroupLen(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.minGroupLen = n
		}
	}
}

// WithMaxCollapsePasses caps chain-collapse iterations before the build is
// declared non-convergent.
func WithMaxCollapsePasses(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxCollapsePasses = n
		}
	}
}

// WithDeduper sets the duplicate-observation guard used during ingest.
func WithDeduper(d dedupe.Deduper) Option {
	return func(b *Builder) {
		if d != nil {
			b.deduper = d
		}
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}
