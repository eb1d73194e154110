package auth

import (
	"bytes"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/square/go-jose.v2/jwt"

	"github.com/adrienbrault/auth0-go/idtoken"
	"github.com/adrienbrault/auth0-go/users"
)

// TestProvider is a disposable in-process identity provider implementing the
// two endpoints the session talks to: the token endpoint and the user profile
// API.  It signs real HS256 id_tokens with the configured client secret, so
// sessions under test run the full decode path.
type TestProvider struct {
	httpServer *httptest.Server
	caCert     string
	t          *testing.T

	mu               sync.Mutex
	clientID         string
	clientSecret     string
	expectedAuthCode string
	replySubject     string
	replyAccessToken string
	replyUserinfo    map[string]interface{}
	updateReply      users.User
	omitAccessToken  bool
	omitIDToken      bool

	tokenRequests  int
	userGets       int
	userUpdates    int
	lastUpdateBody map[string]interface{}
}

// StartTestProvider creates a disposable TestProvider on a TLS test server.
// Use Domain() and CACert() to point a session at it.
func StartTestProvider(t *testing.T) *TestProvider {
	t.Helper()
	require := require.New(t)

	p := &TestProvider{
		t:                t,
		clientID:         "test-client-id",
		clientSecret:     "test-client-secret",
		expectedAuthCode: "test-code",
		replySubject:     "u1",
		replyAccessToken: "AT1",
		replyUserinfo: map[string]interface{}{
			"email":         "alice@example.com",
			"user_metadata": map[string]interface{}{"a": float64(1)},
		},
	}
	p.httpServer = httptest.NewTLSServer(p)
	t.Cleanup(p.httpServer.Close)

	cert := p.httpServer.Certificate()
	var buf bytes.Buffer
	err := pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	require.NoError(err)
	p.caCert = buf.String()

	return p
}

// Domain returns the host:port the provider listens on, suitable as a
// session's tenant domain.
func (p *TestProvider) Domain() string {
	return strings.TrimPrefix(p.httpServer.URL, "https://")
}

// CACert returns the PEM-encoded CA certificate for the test server, for use
// with WithProviderCA.
func (p *TestProvider) CACert() string {
	return p.caCert
}

// SetClientCreds configures the client id and secret the provider signs and
// issues tokens for.
func (p *TestProvider) SetClientCreds(clientID, clientSecret string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clientID = clientID
	p.clientSecret = clientSecret
}

// SetExpectedAuthCode configures the one authorization code the token
// endpoint accepts.
func (p *TestProvider) SetExpectedAuthCode(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expectedAuthCode = code
}

// SetReplySubject configures the subject embedded in issued id_tokens and
// profiles.
func (p *TestProvider) SetReplySubject(sub string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replySubject = sub
}

// SetReplyAccessToken configures the access token the token endpoint issues.
func (p *TestProvider) SetReplyAccessToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replyAccessToken = token
}

// SetReplyUserinfo configures the profile attributes returned by the user
// API (merged with the user_id).
func (p *TestProvider) SetReplyUserinfo(info map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replyUserinfo = info
}

// SetUpdateReply configures the exact profile the update endpoint returns,
// regardless of the requested changes.
func (p *TestProvider) SetUpdateReply(u users.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateReply = u
}

// OmitAccessTokens forces an error state where the token endpoint does not
// return access_token.
func (p *TestProvider) OmitAccessTokens() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.omitAccessToken = true
}

// OmitIDTokens forces an error state where the token endpoint does not
// return id_token.
func (p *TestProvider) OmitIDTokens() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.omitIDToken = true
}

// TokenRequestCount returns how many token endpoint calls were made.
func (p *TestProvider) TokenRequestCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokenRequests
}

// UserGetCount returns how many profile fetches were made.
func (p *TestProvider) UserGetCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userGets
}

// UserUpdateCount returns how many profile updates were made.
func (p *TestProvider) UserUpdateCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userUpdates
}

// LastUpdateBody returns the decoded JSON body of the most recent profile
// update request.
func (p *TestProvider) LastUpdateBody() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUpdateBody
}

func (p *TestProvider) mintIDToken() string {
	return idtoken.TestSignHS256(p.t, []byte(p.clientSecret), jwt.Claims{
		Subject:  p.replySubject,
		Issuer:   "https://" + p.Domain() + "/",
		Audience: jwt.Audience{p.clientID},
		Expiry:   jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}, nil)
}

// ServeHTTP implements the provider's HTTP surface.
func (p *TestProvider) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case req.URL.Path == "/oauth/token" && req.Method == http.MethodPost:
		p.tokenRequests++
		_ = req.ParseForm()
		if req.Form.Get("grant_type") != "authorization_code" || req.Form.Get("code") != p.expectedAuthCode {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_grant",
				"error_description": "unexpected grant_type or code",
			})
			return
		}
		reply := map[string]interface{}{
			"token_type": "bearer",
			"expires_in": 3600,
		}
		if !p.omitAccessToken {
			reply["access_token"] = p.replyAccessToken
		}
		if !p.omitIDToken {
			reply["id_token"] = p.mintIDToken()
		}
		_ = json.NewEncoder(w).Encode(reply)

	case strings.HasPrefix(req.URL.Path, "/api/users/") && req.Method == http.MethodGet:
		p.userGets++
		userID := strings.TrimPrefix(req.URL.Path, "/api/users/")
		profile := map[string]interface{}{
			"user_id": userID,
		}
		for k, v := range p.replyUserinfo {
			profile[k] = v
		}
		_ = json.NewEncoder(w).Encode(profile)

	case strings.HasPrefix(req.URL.Path, "/api/users/") && req.Method == http.MethodPatch:
		p.userUpdates++
		body := map[string]interface{}{}
		_ = json.NewDecoder(req.Body).Decode(&body)
		p.lastUpdateBody = body

		if p.updateReply != nil {
			// convert so the profile encodes as a JSON object rather than
			// through users.User's MarshalText, which would double-encode it
			_ = json.NewEncoder(w).Encode(map[string]interface{}(p.updateReply))
			return
		}
		userID := strings.TrimPrefix(req.URL.Path, "/api/users/")
		meta := map[string]interface{}{}
		if m, ok := body["user_metadata"].(map[string]interface{}); ok {
			for k, v := range m {
				if v != nil {
					meta[k] = v
				}
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"user_id":       userID,
			"user_metadata": meta,
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
	}
}
