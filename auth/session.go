package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-uuid"
	"golang.org/x/oauth2"

	"github.com/adrienbrault/auth0-go/idtoken"
	"github.com/adrienbrault/auth0-go/internal/httputil"
	"github.com/adrienbrault/auth0-go/store"
	"github.com/adrienbrault/auth0-go/users"
)

// UserAPI is the capability the session needs from the profile API: fetch a
// profile and apply a partial update, both authenticated with the end-user's
// id_token.  users.Client is the production implementation.
type UserAPI interface {
	Get(ctx context.Context, idToken string, userID string) (users.User, error)
	Update(ctx context.Context, idToken string, userID string, attributes map[string]interface{}) (users.User, error)
}

// Session owns the configuration, the credential state, and the lazy
// authorization-code exchange for one request's worth of interaction with the
// provider.  A Session is constructed per incoming request and is not safe
// for concurrent use.
//
// Credentials (access token, id_token, user profile) are restored from the
// store at construction.  The first credential getter that finds its value
// unknown triggers at most one code exchange for the lifetime of the
// instance; afterwards getters answer from memory.
type Session struct {
	config *Config
	policy PersistencePolicy
	store  store.Store

	codec idtoken.Decoder
	users UserAPI
	now   func() time.Time

	httpClient  *http.Client
	oauthConfig oauth2.Config
	bearer      *oauth2.Token

	code      string
	attempted bool
	exchanged bool

	debugger func(string)

	accessToken credential
	idToken     credential
	user        userCredential
}

// New constructs a Session from a validated config, restores any persisted
// credentials, and prepares the underlying OAuth2 client.  Construction fails
// with ErrInvalidConfiguration before any store access when a required config
// field is missing, and with ErrEnvironment when the HTTP transport can't be
// built.
// Supported options: WithStore, WithSessionValues, WithoutPersistence,
// WithPersistence, WithAuthorizationCode, WithRequest, WithDebugger,
// WithLogger, WithHTTPClient, WithProviderCA, WithCodec, WithUserClient,
// WithNow
func New(c *Config, opt ...Option) (*Session, error) {
	const op = "auth.New"
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	opts := getSessionOpts(opt...)

	httpClient := opts.withHTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = httputil.NewClient(opts.withProviderCA)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %s: %w", op, err, ErrEnvironment)
		}
	} else {
		httpClient = httputil.WrapClient(httpClient)
	}

	credStore := opts.withStore
	switch {
	case opts.withoutPersistence:
		credStore = store.NewNullStore()
	case credStore == nil:
		credStore = store.NewSessionStore(opts.withSessionValues)
	}

	policy := DefaultPersistencePolicy()
	if opts.withPolicy != nil {
		policy = *opts.withPolicy
	}

	s := &Session{
		config:     c,
		policy:     policy,
		store:      credStore,
		codec:      opts.withCodec,
		users:      opts.withUserClient,
		now:        opts.withNow,
		httpClient: httpClient,
		code:       opts.withCode,
		debugger:   opts.withDebugger,
	}
	if s.code == "" && opts.withRequest != nil {
		s.code = opts.withRequest.FormValue("code")
	}
	if s.debugger == nil && opts.withLogger != nil {
		logger := opts.withLogger
		s.debugger = func(msg string) {
			logger.Debug(msg)
		}
	}

	s.oauthConfig = oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: string(c.ClientSecret),
		RedirectURL:  c.RedirectURI,
		Scopes:       []string{"openid"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.URL(EndpointAuthorize, ""),
			TokenURL: c.URL(EndpointToken, ""),
		},
	}

	if err := s.restore(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// restore loads previously persisted credentials.  A missing value leaves the
// credential unknown, which is what arms the lazy exchange.
func (s *Session) restore(ctx context.Context) error {
	at, err := s.restoreValue(ctx, store.KeyAccessToken)
	if err != nil {
		return err
	}
	if at != "" {
		s.accessToken.set(at)
		s.installBearer(at)
		s.debugf("restored access token from store")
	}

	idt, err := s.restoreValue(ctx, store.KeyIDToken)
	if err != nil {
		return err
	}
	if idt != "" {
		s.idToken.set(idt)
	}

	rawUser, err := s.restoreValue(ctx, store.KeyUser)
	if err != nil {
		return err
	}
	if rawUser != "" {
		// a corrupt stored profile reads as absent, leaving the value
		// unknown so a later exchange can repopulate it
		if u := users.ParseUser(rawUser); u != nil {
			s.user.set(u)
		}
	}
	return nil
}

func (s *Session) restoreValue(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("unable to restore %s: %w", key, err)
	}
	return v, nil
}

func (s *Session) installBearer(accessToken string) {
	s.bearer = &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
}

// ensureExchanged performs the lazy authorization-code exchange.  Exactly one
// attempt is made per Session instance no matter how many getters ask; after
// the attempt every still-unknown credential becomes known-empty so getters
// answer from memory from then on.
func (s *Session) ensureExchanged(ctx context.Context) error {
	if s.attempted {
		return nil
	}
	s.attempted = true
	defer func() {
		s.accessToken.settle()
		s.idToken.settle()
		s.user.settle()
	}()

	if s.code == "" {
		// not an error: the caller simply hasn't been sent through the
		// authorization flow yet
		s.debugf("no authorization code present, code exchange skipped")
		return nil
	}
	return s.exchange(ctx)
}

// tokenResponse is the token endpoint's reply.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

func (s *Session) exchange(ctx context.Context) error {
	const op = "Session.exchange"

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {s.config.ClientID},
		"client_secret": {string(s.config.ClientSecret)},
		"code":          {s.code},
		"redirect_uri":  {s.config.RedirectURI},
	}
	tokenURL := s.config.URL(EndpointToken, "")
	s.debugf("exchanging authorization code at %s", tokenURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: unable to create token request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: token request failed: %w", op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: unable to read token response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: token endpoint status %d: %w", op, resp.StatusCode, ErrAPI)
	}

	var tr tokenResponse
	if err := json.Unmarshal(payload, &tr); err != nil {
		return fmt.Errorf("%s: unable to decode token response: %w", op, ErrAPI)
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("%s: %w", op, ErrMissingAccessToken)
	}
	if tr.IDToken == "" {
		return fmt.Errorf("%s: %w", op, ErrMissingIDToken)
	}

	s.installBearer(tr.AccessToken)
	if tr.ExpiresIn > 0 {
		s.bearer.Expiry = s.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	if err := s.SetAccessToken(ctx, tr.AccessToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.SetIDToken(ctx, tr.IDToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	claims, err := s.decoder().Decode(ctx, tr.IDToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.debugf("decoded id_token for subject %s", claims.Subject)

	profile, err := s.userClient().Get(ctx, tr.IDToken, claims.Subject)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.SetUser(ctx, profile); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.exchanged = true
	return nil
}

// decoder returns the configured id_token codec, defaulting to HS256
// verification with the current client secret.
func (s *Session) decoder() idtoken.Decoder {
	if s.codec != nil {
		return s.codec
	}
	codec, err := idtoken.NewSecretCodec([]byte(s.config.ClientSecret), s.config.ClientID, idtoken.WithNow(s.now))
	if err != nil {
		return decodeError{err: err}
	}
	return codec
}

// decodeError is a Decoder that fails with the construction error, used when
// the default codec can't be built (e.g. the secret was cleared after
// construction).
type decodeError struct {
	err error
}

func (d decodeError) Decode(context.Context, string) (*idtoken.Claims, error) {
	return nil, d.err
}

// userClient returns the configured profile API client, defaulting to a
// users.Client for the current domain.
func (s *Session) userClient() UserAPI {
	if s.users != nil {
		return s.users
	}
	c, err := users.New(s.config.Domain, users.WithHTTPClient(s.httpClient))
	if err != nil {
		return userError{err: err}
	}
	return c
}

type userError struct {
	err error
}

func (u userError) Get(context.Context, string, string) (users.User, error) {
	return nil, u.err
}

func (u userError) Update(context.Context, string, string, map[string]interface{}) (users.User, error) {
	return nil, u.err
}

// Exchanged reports whether this instance performed a successful code
// exchange.
func (s *Session) Exchanged() bool {
	return s.exchanged
}

// AccessToken returns the access token, triggering the lazy code exchange if
// the token was never restored or exchanged.  Empty means the caller is not
// authenticated.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	if s.accessToken.unknown() {
		if err := s.ensureExchanged(ctx); err != nil {
			return "", err
		}
	}
	return s.accessToken.value, nil
}

// IDToken returns the id_token, triggering the lazy code exchange if the
// token was never restored or exchanged.
func (s *Session) IDToken(ctx context.Context) (string, error) {
	if s.idToken.unknown() {
		if err := s.ensureExchanged(ctx); err != nil {
			return "", err
		}
	}
	return s.idToken.value, nil
}

// User returns the user profile, triggering the lazy code exchange if the
// profile was never restored or exchanged.  A nil profile means the caller
// is not authenticated (or the stored record was malformed).
func (s *Session) User(ctx context.Context) (users.User, error) {
	if s.user.unknown() {
		if err := s.ensureExchanged(ctx); err != nil {
			return nil, err
		}
	}
	return s.user.value, nil
}

// UserMetadata returns the profile's user_metadata sub-record, or nil when
// there is no profile.
func (s *Session) UserMetadata(ctx context.Context) (map[string]interface{}, error) {
	u, err := s.User(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	return u.UserMetadata(), nil
}

// AppMetadata returns the profile's app_metadata sub-record, or nil when
// there is no profile.
func (s *Session) AppMetadata(ctx context.Context) (map[string]interface{}, error) {
	u, err := s.User(ctx)
	if err != nil || u == nil {
		return nil, err
	}
	return u.AppMetadata(), nil
}

// SetAccessToken updates the in-memory access token (and the bearer
// credential used by Client), writing through to the store only when the
// access token kind is in the persistence policy.
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	s.accessToken.set(token)
	if token == "" {
		s.bearer = nil
	} else {
		if s.bearer == nil || s.bearer.AccessToken != token {
			s.installBearer(token)
		}
	}
	if !s.policy.AccessToken {
		return nil
	}
	return s.store.Set(ctx, store.KeyAccessToken, token)
}

// SetIDToken updates the in-memory id_token, writing through to the store
// only when the id_token kind is in the persistence policy.
func (s *Session) SetIDToken(ctx context.Context, token string) error {
	s.idToken.set(token)
	if !s.policy.IDToken {
		return nil
	}
	return s.store.Set(ctx, store.KeyIDToken, token)
}

// SetUser updates the in-memory profile, writing through to the store only
// when the user kind is in the persistence policy.
func (s *Session) SetUser(ctx context.Context, u users.User) error {
	s.user.set(u)
	if !s.policy.User {
		return nil
	}
	if u == nil {
		return s.store.Delete(ctx, store.KeyUser)
	}
	raw, err := u.MarshalText()
	if err != nil {
		return fmt.Errorf("Session.SetUser: unable to encode profile: %w", err)
	}
	return s.store.Set(ctx, store.KeyUser, string(raw))
}

// UpdateUserMetadata applies a partial user_metadata update server-side and
// replaces the session's profile with the server's returned representation
// (no client-side merge).  A key set to nil deletes that attribute
// server-side; omitted keys are untouched.
func (s *Session) UpdateUserMetadata(ctx context.Context, metadata map[string]interface{}) (users.User, error) {
	const op = "Session.UpdateUserMetadata"
	idt, err := s.IDToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u, err := s.User(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if idt == "" || u == nil || u.ID() == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotAuthenticated)
	}

	updated, err := s.userClient().Update(ctx, idt, u.ID(), map[string]interface{}{
		"user_metadata": metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.SetUser(ctx, updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Logout erases every credential kind from the store regardless of the
// persistence policy and clears all in-memory credential state.
func (s *Session) Logout(ctx context.Context) error {
	const op = "Session.Logout"
	var result *multierror.Error
	for _, key := range []string{store.KeyAccessToken, store.KeyIDToken, store.KeyUser} {
		if err := s.store.Delete(ctx, key); err != nil {
			result = multierror.Append(result, fmt.Errorf("unable to delete %s: %w", key, err))
		}
	}
	s.accessToken.clear()
	s.idToken.clear()
	s.user.clear()
	s.bearer = nil
	s.debugf("logged out, credential store wiped")
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AuthorizeURL builds the provider login URL that starts the authorization
// code flow, returning the URL together with the state value embedded in it.
// The openid scope is always requested.
// Supported options: WithScopes, WithState
func (s *Session) AuthorizeURL(opt ...Option) (string, string, error) {
	const op = "Session.AuthorizeURL"
	opts := getAuthorizeOpts(opt...)

	state := opts.withState
	if state == "" {
		var err error
		state, err = uuid.GenerateUUID()
		if err != nil {
			return "", "", fmt.Errorf("%s: unable to generate state: %w", op, err)
		}
	}

	cfg := s.oauthConfig
	cfg.Scopes = append([]string{"openid"}, opts.withScopes...)
	return cfg.AuthCodeURL(state), state, nil
}

// Client returns an http client that authenticates requests with the
// session's access token as a bearer credential, triggering the lazy
// exchange if needed.
func (s *Session) Client(ctx context.Context) (*http.Client, error) {
	const op = "Session.Client"
	if s.bearer == nil {
		if err := s.ensureExchanged(ctx); err != nil {
			return nil, err
		}
	}
	if s.bearer == nil {
		return nil, fmt.Errorf("%s: no access token available: %w", op, ErrNotAuthenticated)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(s.bearer)), nil
}

// debugf feeds the debug sink when debug mode is on.  The sink can neither
// fail the caller nor alter control flow; panics from it are swallowed.
func (s *Session) debugf(format string, args ...interface{}) {
	if !s.config.Debug || s.debugger == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	defer func() {
		_ = recover()
	}()
	s.debugger(msg)
}
