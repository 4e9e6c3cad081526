package forms

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

const (
	emailAtom  = "[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+"
	emailLabel = `[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`

	emailMaxLength      = 254
	emailLocalMaxLength = 64
)

var (
	emailRegex     = regexp.MustCompile(`^` + emailAtom + `(?:\.` + emailAtom + `)*@` + emailLabel + `(?:\.` + emailLabel + `)*$`)
	phoneRegex     = regexp.MustCompile(`^(?:\+33|0)[1-9][0-9]{8}$`)
	upperCaseRegex = regexp.MustCompile(`[A-Z]`)
	lowerCaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
)

const (
	LoginSecretMinLength        = 6
	RegistrationSecretMinLength = 8
	NameMinLength               = 2
)

// length counts UTF-16 code units, the way browsers measure input length.
func length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// isEmail accepts the same addresses as the browser side validator: ASCII
// dot-atoms, hostname labels, no quoted local parts or address literals.
func isEmail(value string) bool {
	if len(value) > emailMaxLength {
		return false
	}
	at := strings.IndexByte(value, '@')
	if at < 1 || at > emailLocalMaxLength {
		return false
	}
	return emailRegex.MatchString(value)
}

func checkEmail(value string) ErrorKind {
	if value == "" {
		return KindRequired
	}
	if !isEmail(value) {
		return KindFormat
	}
	return KindNone
}

func checkMinLength(value string, min int) ErrorKind {
	if value == "" {
		return KindRequired
	}
	if length(value) < min {
		return KindTooShort
	}
	return KindNone
}

func checkPhone(value string) ErrorKind {
	if value == "" {
		return KindRequired
	}
	if !phoneRegex.MatchString(value) {
		return KindFormat
	}
	return KindNone
}

// checkStrongSecret requires a minimum length plus one upper case letter,
// one lower case letter and one digit.
func checkStrongSecret(value string) ErrorKind {
	if kind := checkMinLength(value, RegistrationSecretMinLength); kind != KindNone {
		return kind
	}
	if !upperCaseRegex.MatchString(value) || !lowerCaseRegex.MatchString(value) || !digitRegex.MatchString(value) {
		return KindFormat
	}
	return KindNone
}

func checkRequiredTrue(value bool) ErrorKind {
	if !value {
		return KindRequired
	}
	return KindNone
}

// parseBool accepts what html checkboxes and the json api send.
func parseBool(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" || value == "yes" {
		return true
	}
	return cast.ToBool(value)
}
