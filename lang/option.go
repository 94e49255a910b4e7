package lang

import "github.com/ardnew/kaleido/log"

// DefaultMaxDepth is the default maximum expression nesting depth.
const DefaultMaxDepth = 256

// options holds the configuration of a Parser.
type options struct {
	logger   log.Logger
	prec     *Precedence
	source   string
	maxDepth int
	commas   bool
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.prec == nil {
		o.prec = DefaultPrecedence()
	}

	return o
}

// scanOptions returns the scanner configuration implied by o.
func (o options) scanOptions() []ScanOption {
	opts := []ScanOption{ScanSource(o.source)}
	if o.commas {
		opts = append(opts, ScanCommaNumbers())
	}

	return opts
}

// Option configures parsing behavior.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPrecedence sets the operator table. The parser keeps a clone, so later
// changes to prec are not observed. A nil table selects
// [DefaultPrecedence].
func WithPrecedence(prec *Precedence) Option {
	return func(o *options) {
		if prec == nil {
			o.prec = nil

			return
		}

		o.prec = prec.Clone()
	}
}

// WithMaxDepth sets the maximum nesting depth of expressions.
// A depth of zero or less restores [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithSource names the source recorded in positions.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// WithCommaNumbers selects the numeric continuation of [ScanCommaNumbers].
func WithCommaNumbers(enable bool) Option {
	return func(o *options) {
		o.commas = enable
	}
}
