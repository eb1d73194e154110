package store

import "time"

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		o(opts)
	}
}

// options is the set of available options for store constructors
type options struct {
	withKeyPrefix string
	withTTL       time.Duration
}

// defaults is a handy way to get the defaults at runtime and during unit
// tests.
func defaults() options {
	return options{
		withKeyPrefix: DefaultKeyPrefix,
	}
}

// getOpts gets the defaults and applies the opt overrides passed in.
func getOpts(opt ...Option) options {
	opts := defaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithKeyPrefix provides an optional namespace prefix for credential keys.
func WithKeyPrefix(prefix string) Option {
	return func(o interface{}) {
		if o, ok := o.(*options); ok {
			o.withKeyPrefix = prefix
		}
	}
}

// WithTTL provides an optional expiry for persisted credentials.  It is only
// honored by stores with native expiry support (RedisStore); zero means the
// values do not expire.
func WithTTL(d time.Duration) Option {
	return func(o interface{}) {
		if o, ok := o.(*options); ok {
			o.withTTL = d
		}
	}
}
