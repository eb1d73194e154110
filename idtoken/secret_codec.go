package idtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	jose "gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

// SecretCodec verifies id_tokens signed with HS256 using the OAuth client
// secret as the shared key, which is how the provider signs tokens for
// confidential clients by default.
type SecretCodec struct {
	secret   []byte
	audience string
	now      func() time.Time
}

// ensure that SecretCodec implements the Decoder interface
var _ Decoder = (*SecretCodec)(nil)

// NewSecretCodec creates a codec for the given signing secret and expected
// audience (normally the OAuth client id).
// Supported options: WithNow
func NewSecretCodec(secret []byte, audience string, opt ...Option) (*SecretCodec, error) {
	const op = "idtoken.NewSecretCodec"
	if len(secret) == 0 {
		return nil, fmt.Errorf("%s: signing secret is empty: %w", op, ErrInvalidParameter)
	}
	if audience == "" {
		return nil, fmt.Errorf("%s: audience is empty: %w", op, ErrInvalidParameter)
	}
	opts := getOpts(opt...)
	return &SecretCodec{
		secret:   secret,
		audience: audience,
		now:      opts.withNow,
	}, nil
}

// Decode parses the raw id_token, verifies its HS256 signature with the
// codec's secret, and validates the audience and lifetime claims.
func (c *SecretCodec) Decode(ctx context.Context, raw string) (*Claims, error) {
	const op = "SecretCodec.Decode"
	if raw == "" {
		return nil, fmt.Errorf("%s: id_token is empty: %w", op, ErrInvalidParameter)
	}
	parsed, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to parse id_token: %w", op, ErrInvalidToken)
	}
	if len(parsed.Headers) != 1 || parsed.Headers[0].Algorithm != string(jose.HS256) {
		return nil, fmt.Errorf("%s: id_token is not signed with HS256: %w", op, ErrInvalidSignature)
	}

	var std jwt.Claims
	all := map[string]interface{}{}
	if err := parsed.Claims(c.secret, &std, &all); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	err = std.ValidateWithLeeway(jwt.Expected{
		Audience: jwt.Audience{c.audience},
		Time:     c.now(),
	}, jwt.DefaultLeeway)
	switch {
	case errors.Is(err, jwt.ErrInvalidAudience):
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAudience)
	case errors.Is(err, jwt.ErrExpired):
		return nil, fmt.Errorf("%s: %w", op, ErrExpiredToken)
	case err != nil:
		return nil, fmt.Errorf("%s: id_token claims are invalid: %w", op, ErrInvalidToken)
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
