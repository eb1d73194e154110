package idtoken

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	jose "gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

func testJWKSServer(t *testing.T, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	jwks := jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{Key: pub, KeyID: "test-key", Algorithm: string(jose.RS256), Use: "sig"},
		},
	}
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(s.Close)
	return s
}

func testSignRS256(t *testing.T, key *rsa.PrivateKey, claims jwt.Claims) string {
	t.Helper()
	require := require.New(t)
	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: jose.JSONWebKey{Key: key, KeyID: "test-key"}},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(err)
	raw, err := jwt.Signed(sig).Claims(claims).CompactSerialize()
	require.NoError(err)
	return raw
}

func TestKeySetCodec_Decode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	req := require.New(t)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	req.NoError(err)
	srv := testJWKSServer(t, &key.PublicKey)

	now := time.Now()
	claims := jwt.Claims{
		Subject:  "u1",
		Issuer:   "https://test.example.com/",
		Audience: jwt.Audience{"client-id"},
		Expiry:   jwt.NewNumericDate(now.Add(time.Hour)),
	}

	t.Run("valid", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		c, err := NewKeySetCodec(ctx, srv.URL, "client-id")
		require.NoError(err)

		got, err := c.Decode(ctx, testSignRS256(t, key, claims))
		require.NoError(err)
		assert.Equal("u1", got.Subject)
		assert.Equal([]string{"client-id"}, got.Audience)
	})

	t.Run("wrong-audience", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		c, err := NewKeySetCodec(ctx, srv.URL, "other-client")
		require.NoError(err)

		_, err = c.Decode(ctx, testSignRS256(t, key, claims))
		assert.True(errors.Is(err, ErrInvalidAudience))
	})

	t.Run("wrong-key", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(err)

		c, err := NewKeySetCodec(ctx, srv.URL, "client-id")
		require.NoError(err)

		_, err = c.Decode(ctx, testSignRS256(t, otherKey, claims))
		assert.True(errors.Is(err, ErrInvalidSignature))
	})

	t.Run("expired", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		expired := claims
		expired.Expiry = jwt.NewNumericDate(now.Add(-time.Hour))

		c, err := NewKeySetCodec(ctx, srv.URL, "client-id")
		require.NoError(err)

		_, err = c.Decode(ctx, testSignRS256(t, key, expired))
		assert.True(errors.Is(err, ErrExpiredToken))
	})

	t.Run("missing-jwks-url", func(t *testing.T) {
		assert := assert.New(t)
		_, err := NewKeySetCodec(ctx, "", "client-id")
		assert.True(errors.Is(err, ErrInvalidParameter))
	})
}
