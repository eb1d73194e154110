package users

import "encoding/json"

// User is the provider's representation of a user profile.  It is kept as a
// decoded JSON record rather than a fixed struct because the profile carries
// arbitrary provider, connection, and metadata attributes.
type User map[string]interface{}

// ID returns the user's unique subject identifier: the user_id attribute,
// falling back to the sub claim echoed into the profile.  Empty when neither
// is present.
func (u User) ID() string {
	if id, ok := u["user_id"].(string); ok && id != "" {
		return id
	}
	if sub, ok := u["sub"].(string); ok {
		return sub
	}
	return ""
}

// UserMetadata returns the profile's user_metadata sub-record, or nil when
// absent or malformed.
func (u User) UserMetadata() map[string]interface{} {
	m, _ := u["user_metadata"].(map[string]interface{})
	return m
}

// AppMetadata returns the profile's app_metadata sub-record, or nil when
// absent or malformed.
func (u User) AppMetadata() map[string]interface{} {
	m, _ := u["app_metadata"].(map[string]interface{})
	return m
}

// MarshalText encodes the profile as JSON for credential storage.
func (u User) MarshalText() ([]byte, error) {
	return json.Marshal(map[string]interface{}(u))
}

// ParseUser decodes a stored profile.  It returns a nil User (and no error)
// when the raw value is not a well-formed JSON record, since a corrupt stored
// profile is treated as absent rather than fatal.
func ParseUser(raw string) User {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return u
}
