// Package gateway defines the authentication backend the forms submit to.
package gateway

import (
	"context"
	"time"
)

// Session is returned by a successful login.
type Session struct {
	Identifier  string
	DisplayName string
	Token       string
	ExpiresAt   time.Time
}

// RegisterRequest carries the registration data sent to the backend.
type RegisterRequest struct {
	CompanyName         string
	LegalRepresentative string
	Phone               string
	Email               string
	Password            string
}

// Account is returned by a successful registration.
type Account struct {
	ID          string
	Email       string
	CompanyName string
}

// Gateway is the contract of an authentication backend. A network client
// replaces Simulated behind the same two calls.
type Gateway interface {
	Login(ctx context.Context, identifier string, secret string) (*Session, error)
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
}

// TokenVerifier is implemented by backends that can check the session token
// they issued. It returns the identifier the token was issued to.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}
