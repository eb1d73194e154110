package auth

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidConfiguration is returned from construction when a required
	// configuration field (domain, client id, client secret, redirect URI)
	// is missing or empty.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEnvironment is returned from construction when the runtime can't
	// provide the HTTP capability the session needs, e.g. the provider CA
	// PEM can't be parsed into a client transport.
	ErrEnvironment = errors.New("environment is missing required capability")

	// ErrAPI is returned when the provider's token endpoint answers with a
	// malformed or incomplete response.  There is no automatic retry; the
	// caller is expected to restart the authorization flow.
	ErrAPI = errors.New("identity provider api error")

	// ErrNotAuthenticated is returned when an operation needs credentials
	// but the session has none and no authorization code is available.
	ErrNotAuthenticated = errors.New("not authenticated")
)

var (
	// ErrMissingAccessToken reports a token response without an access_token.
	ErrMissingAccessToken = fmt.Errorf("access_token is missing from the token response: %w", ErrAPI)

	// ErrMissingIDToken reports a token response without an id_token, which
	// the provider only includes when the openid scope was requested.
	ErrMissingIDToken = fmt.Errorf("id_token is missing from the token response, make sure the openid scope was requested: %w", ErrAPI)
)
