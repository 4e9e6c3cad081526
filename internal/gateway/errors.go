package gateway

import (
	"errors"
)

// Kind classifies a gateway failure.
type Kind string

const (
	KindInvalidCredentials Kind = "invalidCredentials"
	KindEmailTaken         Kind = "emailTaken"
	KindInvalidCompanyName Kind = "invalidCompanyName"
	KindUnknown            Kind = "unknown"
)

var (
	MsgInvalidCredentials = "Identifiants incorrects. Veuillez réessayer."
	MsgEmailTaken         = "Cette adresse email est déjà utilisée."
	MsgInvalidCompanyName = "Nom d'entreprise invalide."
	MsgLoginFailed        = "Une erreur est survenue lors de la connexion"
	MsgRegisterFailed     = "Une erreur est survenue lors de la création du compte"
)

// Error is a failure reported by the backend. Message is shown to the user
// verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: MsgInvalidCredentials}
	ErrEmailTaken         = &Error{Kind: KindEmailTaken, Message: MsgEmailTaken}
	ErrInvalidCompanyName = &Error{Kind: KindInvalidCompanyName, Message: MsgInvalidCompanyName}
)

// AsError returns err as a gateway error. Anything unexpected becomes
// KindUnknown carrying fallback as message.
func AsError(err error, fallback string) *Error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		if gwErr.Message == "" {
			return &Error{Kind: gwErr.Kind, Message: fallback, Err: gwErr.Err}
		}
		return gwErr
	}
	return &Error{Kind: KindUnknown, Message: fallback, Err: err}
}
