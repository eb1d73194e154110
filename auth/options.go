package auth

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/adrienbrault/auth0-go/idtoken"
	"github.com/adrienbrault/auth0-go/store"
)

// Option defines a common functional options type
type Option func(interface{})

// ApplyOpts takes a pointer to the options struct as a set of default options
// and applies the slice of opts as overrides.
func ApplyOpts(opts interface{}, opt ...Option) {
	for _, o := range opt {
		o(opts)
	}
}

// configOptions is the set of available options for NewConfig
type configOptions struct {
	withDebug bool
}

func getConfigOpts(opt ...Option) configOptions {
	opts := configOptions{}
	ApplyOpts(&opts, opt...)
	return opts
}

// WithDebug enables the debug sink for the config being composed.
func WithDebug() Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withDebug = true
		}
	}
}

// sessionOptions is the set of available options for New
type sessionOptions struct {
	withStore          store.Store
	withSessionValues  map[string]string
	withoutPersistence bool
	withPolicy         *PersistencePolicy
	withCode           string
	withRequest        *http.Request
	withDebugger       func(string)
	withLogger         hclog.Logger
	withHTTPClient     *http.Client
	withProviderCA     string
	withCodec          idtoken.Decoder
	withUserClient     UserAPI
	withNow            func() time.Time
}

func sessionDefaults() sessionOptions {
	return sessionOptions{
		withNow: time.Now,
	}
}

func getSessionOpts(opt ...Option) sessionOptions {
	opts := sessionDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithStore provides the credential store the session persists through.  By
// default the session uses a fresh session-values store.
func WithStore(s store.Store) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withStore = s
		}
	}
}

// WithSessionValues binds the default session-backed store to the hosting
// application's session value bag instead of a private one.
func WithSessionValues(values map[string]string) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withSessionValues = values
		}
	}
}

// WithoutPersistence disables credential persistence entirely by selecting
// the no-op store.
func WithoutPersistence() Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withoutPersistence = true
		}
	}
}

// WithPersistence overrides the default persistence policy (profile
// persisted; access token and id_token not persisted).
func WithPersistence(p PersistencePolicy) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withPolicy = &p
		}
	}
}

// WithAuthorizationCode provides the authorization code returned by the
// provider's login redirect.  Without a code (and without restored
// credentials) the session stays unauthenticated.
func WithAuthorizationCode(code string) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withCode = code
		}
	}
}

// WithRequest reads the authorization code from the callback request's "code"
// form or query value.
func WithRequest(r *http.Request) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withRequest = r
		}
	}
}

// WithDebugger installs the debug sink invoked with diagnostic messages when
// the config's Debug flag is set.
func WithDebugger(fn func(string)) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withDebugger = fn
		}
	}
}

// WithLogger adapts an hclog logger into the session's debug sink.  Ignored
// when WithDebugger is also given.
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withLogger = l
		}
	}
}

// WithHTTPClient provides an optional http client for provider requests; it
// is wrapped so every request still carries the SDK identification header.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withHTTPClient = c
		}
	}
}

// WithProviderCA provides an optional CA cert PEM to trust when sending
// requests to the provider.
func WithProviderCA(pem string) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withProviderCA = pem
		}
	}
}

// WithCodec provides an optional id_token decoder.  The default verifies
// HS256 signatures with the client secret; use this to swap in the JWKS
// codec for RS256 tenants.
func WithCodec(d idtoken.Decoder) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withCodec = d
		}
	}
}

// WithUserClient provides an optional profile API client.
func WithUserClient(c UserAPI) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			o.withUserClient = c
		}
	}
}

// WithNow provides an optional clock, used by the default id_token codec
// during unit tests.
func WithNow(now func() time.Time) Option {
	return func(o interface{}) {
		if o, ok := o.(*sessionOptions); ok {
			if now != nil {
				o.withNow = now
			}
		}
	}
}

// authorizeOptions is the set of available options for Session.AuthorizeURL
type authorizeOptions struct {
	withScopes []string
	withState  string
}

func getAuthorizeOpts(opt ...Option) authorizeOptions {
	opts := authorizeOptions{}
	ApplyOpts(&opts, opt...)
	return opts
}

// WithScopes provides additional oauth scopes to request beyond the required
// openid scope.
func WithScopes(scopes ...string) Option {
	return func(o interface{}) {
		if o, ok := o.(*authorizeOptions); ok {
			o.withScopes = scopes
		}
	}
}

// WithState provides the state value for the authorization redirect instead
// of a generated one.
func WithState(state string) Option {
	return func(o interface{}) {
		if o, ok := o.(*authorizeOptions); ok {
			o.withState = state
		}
	}
}
