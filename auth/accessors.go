package auth

// Configuration accessors.  The setters return the Session so related
// updates can be chained; they only touch configuration, never the store.

// Domain returns the configured provider tenant domain.
func (s *Session) Domain() string {
	return s.config.Domain
}

// SetDomain updates the tenant domain and rebuilds the endpoint URLs derived
// from it.
func (s *Session) SetDomain(domain string) *Session {
	s.config.Domain = domain
	s.oauthConfig.Endpoint.AuthURL = s.config.URL(EndpointAuthorize, "")
	s.oauthConfig.Endpoint.TokenURL = s.config.URL(EndpointToken, "")
	return s
}

// ClientID returns the OAuth client identifier.
func (s *Session) ClientID() string {
	return s.config.ClientID
}

// SetClientID updates the OAuth client identifier.
func (s *Session) SetClientID(clientID string) *Session {
	s.config.ClientID = clientID
	s.oauthConfig.ClientID = clientID
	return s
}

// ClientSecret returns the OAuth client secret (which redacts itself when
// printed or serialized).
func (s *Session) ClientSecret() ClientSecret {
	return s.config.ClientSecret
}

// SetClientSecret updates the OAuth client secret, which also changes the
// default id_token codec's signing secret.
func (s *Session) SetClientSecret(secret ClientSecret) *Session {
	s.config.ClientSecret = secret
	s.oauthConfig.ClientSecret = string(secret)
	return s
}

// RedirectURI returns the configured callback URI.
func (s *Session) RedirectURI() string {
	return s.config.RedirectURI
}

// SetRedirectURI updates the callback URI.
func (s *Session) SetRedirectURI(redirectURI string) *Session {
	s.config.RedirectURI = redirectURI
	s.oauthConfig.RedirectURL = redirectURI
	return s
}

// DebugMode reports whether the debug sink is enabled.
func (s *Session) DebugMode() bool {
	return s.config.Debug
}

// SetDebugMode toggles the debug sink.
func (s *Session) SetDebugMode(enabled bool) *Session {
	s.config.Debug = enabled
	return s
}

// Debugger returns the installed debug sink, or nil.
func (s *Session) Debugger() func(string) {
	return s.debugger
}

// SetDebugger installs the debug sink.
func (s *Session) SetDebugger(fn func(string)) *Session {
	s.debugger = fn
	return s
}
