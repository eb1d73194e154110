package auth

import "github.com/adrienbrault/auth0-go/users"

// credState distinguishes a credential that was never restored or exchanged
// (unknown) from one that is known to be empty.  Only unknown values may
// trigger the lazy code exchange.
type credState uint8

const (
	credUnknown credState = iota
	credKnown
	credKnownEmpty
)

type credential struct {
	state credState
	value string
}

func (c *credential) set(v string) {
	if v == "" {
		c.state, c.value = credKnownEmpty, ""
		return
	}
	c.state, c.value = credKnown, v
}

func (c *credential) clear() {
	c.state, c.value = credKnownEmpty, ""
}

func (c *credential) unknown() bool {
	return c.state == credUnknown
}

// settle downgrades an unknown value to known-empty once the one exchange
// attempt for this session instance has been made.
func (c *credential) settle() {
	if c.state == credUnknown {
		c.state = credKnownEmpty
	}
}

type userCredential struct {
	state credState
	value users.User
}

func (c *userCredential) set(u users.User) {
	if u == nil {
		c.state, c.value = credKnownEmpty, nil
		return
	}
	c.state, c.value = credKnown, u
}

func (c *userCredential) clear() {
	c.state, c.value = credKnownEmpty, nil
}

func (c *userCredential) unknown() bool {
	return c.state == credUnknown
}

func (c *userCredential) settle() {
	if c.state == credUnknown {
		c.state = credKnownEmpty
	}
}
