package auth

// PersistencePolicy fixes, at construction time, which credential kinds are
// written to and read back from the store.  A kind outside the policy only
// ever sees the initial restore attempt; afterwards its in-memory value is
// authoritative for the rest of the session's lifetime.
type PersistencePolicy struct {
	// User persists the user profile under the "user" key
	User bool

	// AccessToken persists the access token
	AccessToken bool

	// IDToken persists the id_token
	IDToken bool
}

// DefaultPersistencePolicy persists the user profile but neither token.  This
// asymmetry is a default, not a structural constraint; override it with
// WithPersistence.
func DefaultPersistencePolicy() PersistencePolicy {
	return PersistencePolicy{
		User: true,
	}
}
