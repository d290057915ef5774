// Package session carries the authenticated admin identity for one picker
// session. It replaces the original client's ambient browser storage with
// an explicit value: set when the session opens, dropped when it closes.
package session

import (
	"errors"
	"strings"
	"time"
)

var ErrMissingToken = errors.New("missing bearer token")

type Context struct {
	Token     string
	AdminName string
	IssuedAt  time.Time
}

func New(token, adminName string) Context {
	return Context{Token: token, AdminName: adminName, IssuedAt: time.Now()}
}

// FromBearer parses an Authorization header value into a session context.
func FromBearer(authorization, adminName string) (Context, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		return Context{}, ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, prefix))
	if token == "" {
		return Context{}, ErrMissingToken
	}
	return New(token, adminName), nil
}

func (c Context) Authenticated() bool { return c.Token != "" }
