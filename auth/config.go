package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

type ClientSecret string

// RedactedClientSecret is the redacted string or json for an oauth client secret
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret
func (t ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret
func (t ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}

// Config represents the configuration for a session against one provider
// tenant.  All fields except Debug are required.
type Config struct {
	// Domain is the provider tenant domain, e.g. "example.auth0.com"
	Domain string

	// ClientID is the OAuth client identifier
	ClientID string

	// ClientSecret is the OAuth client secret.  It is also the HS256
	// signing secret for the tenant's id_tokens.
	ClientSecret ClientSecret

	// RedirectURI is the callback URI registered for the client
	RedirectURI string

	// Debug enables the session's debug sink
	Debug bool
}

// NewConfig composes a validated config.
// Supported options: WithDebug
func NewConfig(domain string, clientID string, clientSecret ClientSecret, redirectURI string, opt ...Option) (*Config, error) {
	const op = "auth.NewConfig"
	opts := getConfigOpts(opt...)
	c := &Config{
		Domain:       domain,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Debug:        opts.withDebug,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// NewConfigFromEnv composes a config from the AUTH0_DOMAIN, AUTH0_CLIENT_ID,
// AUTH0_CLIENT_SECRET, AUTH0_REDIRECT_URI and AUTH0_DEBUG environment
// variables.
func NewConfigFromEnv() (*Config, error) {
	debug, _ := strconv.ParseBool(os.Getenv("AUTH0_DEBUG"))
	var opt []Option
	if debug {
		opt = append(opt, WithDebug())
	}
	return NewConfig(
		os.Getenv("AUTH0_DOMAIN"),
		os.Getenv("AUTH0_CLIENT_ID"),
		ClientSecret(os.Getenv("AUTH0_CLIENT_SECRET")),
		os.Getenv("AUTH0_REDIRECT_URI"),
		opt...,
	)
}

// Validate the configuration.  Every missing required field is reported, not
// just the first one found.
func (c *Config) Validate() error {
	const op = "auth.Config.Validate"
	if c == nil {
		return fmt.Errorf("%s: configuration is nil: %w", op, ErrInvalidConfiguration)
	}
	var result *multierror.Error
	if c.Domain == "" {
		result = multierror.Append(result, fmt.Errorf("domain is empty"))
	}
	if c.ClientID == "" {
		result = multierror.Append(result, fmt.Errorf("client id is empty"))
	}
	if c.ClientSecret == "" {
		result = multierror.Append(result, fmt.Errorf("client secret is empty"))
	}
	if c.RedirectURI == "" {
		result = multierror.Append(result, fmt.Errorf("redirect URI is empty"))
	}
	if result != nil {
		return fmt.Errorf("%s: %s: %w", op, result.Error(), ErrInvalidConfiguration)
	}
	return nil
}
