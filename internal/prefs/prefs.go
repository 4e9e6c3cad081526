// Package prefs persists the remember-me preference of the login form: a
// flag and the identifier to pre-fill. Both values are written and removed
// together, never one without the other.
package prefs

import (
	"context"
)

const (
	KeyRememberMe = "rememberMe"
	KeySavedEmail = "savedEmail"

	rememberValue = "true"
)

// Record is the loaded preference. Identifier is only meaningful when
// HasIdentifier is true.
type Record struct {
	Remember      bool
	Identifier    string
	HasIdentifier bool
}

type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, identifier string) error
	Clear(ctx context.Context) error
}

// Provider opens the store of one namespace, typically a device id.
type Provider interface {
	Open(namespace string) Store
}

func recordOf(remember bool, identifier string) Record {
	if !remember {
		return Record{}
	}
	return Record{
		Remember:      true,
		Identifier:    identifier,
		HasIdentifier: identifier != "",
	}
}
