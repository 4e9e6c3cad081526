package forms

import "fmt"

const (
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRememberMe = "rememberMe"
)

var loginFields = []string{FieldEmail, FieldPassword, FieldRememberMe}

var loginMessages = map[string]map[ErrorKind]string{
	FieldEmail: {
		KindRequired: "L'adresse email est requise.",
		KindFormat:   "Veuillez saisir une adresse email valide.",
	},
	FieldPassword: {
		KindRequired: "Le mot de passe est requis.",
		KindTooShort: fmt.Sprintf("Le mot de passe doit contenir au moins %d caractères.", LoginSecretMinLength),
	},
}

// LoginForm is the state of the login form.
type LoginForm struct {
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"rememberMe" json:"rememberMe"`
}

// LoginErrors is the full validation result of a LoginForm.
type LoginErrors struct {
	Fields FieldErrors
}

func (e LoginErrors) Valid() bool {
	return len(e.Fields) == 0
}

func (e LoginErrors) Status(touched Touched, field string) FieldStatus {
	return statusOf(touched, e.Fields.Kind(field) != KindNone, field)
}

// Messages returns the inline message of every failing field.
func (e LoginErrors) Messages() map[string]string {
	return messagesOf(loginMessages, e.Fields, nil)
}

// ValidateLogin recomputes the validation state of the whole form.
func ValidateLogin(form LoginForm) LoginErrors {
	errs := LoginErrors{Fields: make(FieldErrors)}
	errs.Fields.set(FieldEmail, checkEmail(form.Email))
	errs.Fields.set(FieldPassword, checkMinLength(form.Password, LoginSecretMinLength))
	return errs
}

// LoginFields lists the fields of the login form in display order.
func LoginFields() []string {
	return append([]string(nil), loginFields...)
}

// ApplyLogin returns a copy of form with the event applied.
func ApplyLogin(form LoginForm, ev Event) (LoginForm, error) {
	switch ev.Field {
	case FieldEmail:
		form.Email = ev.Value
	case FieldPassword:
		form.Password = ev.Value
	case FieldRememberMe:
		form.RememberMe = parseBool(ev.Value)
	default:
		return form, fmt.Errorf("%w: %q", ErrUnknownField, ev.Field)
	}
	return form, nil
}
