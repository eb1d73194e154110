// idtoken decodes and validates the id_token returned by the provider's token
// endpoint.  Two codecs are provided: SecretCodec verifies HS256 signatures
// with the OAuth client secret (the provider's default for non-public
// clients), and KeySetCodec verifies RS256 signatures against the provider's
// published JWKS.  Both return the token's Claims, from which the session
// takes the subject identifier used for profile lookups.
package idtoken
