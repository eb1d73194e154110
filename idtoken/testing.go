package idtoken

import (
	"testing"

	"github.com/stretchr/testify/require"
	jose "gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

// TestSignHS256 mints an id_token signed with HS256 for tests.  The optional
// private claims are merged with the registered claims before signing.
func TestSignHS256(t *testing.T, secret []byte, claims jwt.Claims, private map[string]interface{}) string {
	t.Helper()
	require := require.New(t)

	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(err)

	builder := jwt.Signed(sig).Claims(claims)
	if private != nil {
		builder = builder.Claims(private)
	}
	raw, err := builder.CompactSerialize()
	require.NoError(err)
	return raw
}
