package idtoken

import (
	"context"
	"time"
)

// Claims are the decoded id_token claims.  Subject is the unique user id the
// provider knows the end-user by; Raw carries every claim as decoded JSON for
// callers that need more than the registered set.
type Claims struct {
	Subject  string
	Issuer   string
	Audience []string
	Expiry   time.Time
	Raw      map[string]interface{}
}

// Decoder decodes and validates a raw id_token, returning its claims.  The
// session uses it as its token codec; implementations must reject tokens with
// an invalid signature, a wrong audience, or an expired lifetime.
type Decoder interface {
	Decode(ctx context.Context, raw string) (*Claims, error)
}

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		o(opts)
	}
}

// options is the set of available options for codec constructors
type options struct {
	withNow func() time.Time
}

func defaults() options {
	return options{
		withNow: time.Now,
	}
}

func getOpts(opt ...Option) options {
	opts := defaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithNow provides an optional clock for validating token lifetimes during
// unit tests.
func WithNow(now func() time.Time) Option {
	return func(o interface{}) {
		if o, ok := o.(*options); ok {
			if now != nil {
				o.withNow = now
			}
		}
	}
}
