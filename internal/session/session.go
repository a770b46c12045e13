// Package session tracks server-side login sessions keyed by the cookie
// token handed to the client.
package session

import (
	"context"
	"errors"
)

// CookieName is the cookie carrying the session token.
const CookieName = "scantrack_session"

// ErrNoSession is returned when a token matches no live session.
var ErrNoSession = errors.New("no active session")

// Session is the state held server-side for one logged-in client.
type Session struct {
	UserID string
	Roles  []string
}

// Store is the session capability: create on login, lookup on each
// authenticated request, destroy on logout.
type Store interface {
	Create(ctx context.Context, userID string, roles []string) (string, error)
	Lookup(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}
