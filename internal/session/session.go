// Package session holds the client-side credential snapshot: the bearer token
// and the user identity returned at login. The snapshot lives in exactly one
// of two stores, persistent ("remember me") or ephemeral, and writing to one
// always clears the other, so a stale credential can never shadow the active
// one.
package session

import (
	"errors"
	"time"
)

var ErrNoSession = errors.New("no active session")

// Session is the credential snapshot written at login.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists at most one session.
type Store interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// Context owns the persistent/ephemeral store pair. The persistent flag is
// fixed at construction: it decides which store Save writes to; the other
// store is cleared on every Save. Load prefers whichever store has a session.
type Context struct {
	persistent bool
	durable    Store
	ephemeral  Store
}

// NewContext builds a session context. persistent selects the durable store
// as the write target.
func NewContext(durable, ephemeral Store, persistent bool) *Context {
	return &Context{persistent: persistent, durable: durable, ephemeral: ephemeral}
}

// Load returns the active session, checking the write-target store first.
func (c *Context) Load() (*Session, error) {
	first, second := c.ephemeral, c.durable
	if c.persistent {
		first, second = c.durable, c.ephemeral
	}

	if s, err := first.Load(); err == nil {
		return s, nil
	} else if !errors.Is(err, ErrNoSession) {
		return nil, err
	}
	return second.Load()
}

// Save writes the session to the selected store and clears the other one.
func (c *Context) Save(s *Session) error {
	target, other := c.ephemeral, c.durable
	if c.persistent {
		target, other = c.durable, c.ephemeral
	}

	if err := target.Save(s); err != nil {
		return err
	}
	return other.Clear()
}

// Clear wipes both stores; used at logout.
func (c *Context) Clear() error {
	if err := c.durable.Clear(); err != nil {
		return err
	}
	return c.ephemeral.Clear()
}
