package idtoken

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"gopkg.in/square/go-jose.v2/jwt"

	"github.com/adrienbrault/auth0-go/internal/strutils"
)

// KeySetCodec verifies id_tokens signed with RS256 against the provider's
// published JSON Web Key Set.  The remote keys are fetched lazily and cached
// by the underlying key set for the lifetime of the context given to
// NewKeySetCodec.
type KeySetCodec struct {
	keySet   oidc.KeySet
	audience string
	now      func() time.Time
}

// ensure that KeySetCodec implements the Decoder interface
var _ Decoder = (*KeySetCodec)(nil)

// NewKeySetCodec creates a codec that verifies signatures using the JWKS at
// jwksURL (for the fixed provider: https://{domain}/.well-known/jwks.json).
// Supported options: WithNow
func NewKeySetCodec(ctx context.Context, jwksURL string, audience string, opt ...Option) (*KeySetCodec, error) {
	const op = "idtoken.NewKeySetCodec"
	if jwksURL == "" {
		return nil, fmt.Errorf("%s: jwks URL is empty: %w", op, ErrInvalidParameter)
	}
	if audience == "" {
		return nil, fmt.Errorf("%s: audience is empty: %w", op, ErrInvalidParameter)
	}
	opts := getOpts(opt...)
	return &KeySetCodec{
		keySet:   oidc.NewRemoteKeySet(ctx, jwksURL),
		audience: audience,
		now:      opts.withNow,
	}, nil
}

// Decode verifies the raw id_token's signature against the remote key set and
// validates the audience and lifetime claims.
func (c *KeySetCodec) Decode(ctx context.Context, raw string) (*Claims, error) {
	const op = "KeySetCodec.Decode"
	if raw == "" {
		return nil, fmt.Errorf("%s: id_token is empty: %w", op, ErrInvalidParameter)
	}
	payload, err := c.keySet.VerifySignature(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	var std jwt.Claims
	if err := json.Unmarshal(payload, &std); err != nil {
		return nil, fmt.Errorf("%s: unable to decode id_token claims: %w", op, ErrInvalidToken)
	}
	all := map[string]interface{}{}
	if err := json.Unmarshal(payload, &all); err != nil {
		return nil, fmt.Errorf("%s: unable to decode id_token claims: %w", op, ErrInvalidToken)
	}

	if !strutils.StrListContains([]string(std.Audience), c.audience) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAudience)
	}
	if std.Expiry != nil && std.Expiry.Time().Before(c.now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrExpiredToken)
	}
	if std.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingSubject)
	}

	claims := &Claims{
		Subject:  std.Subject,
		Issuer:   std.Issuer,
		Audience: []string(std.Audience),
		Raw:      all,
	}
	if std.Expiry != nil {
		claims.Expiry = std.Expiry.Time()
	}
	return claims, nil
}
