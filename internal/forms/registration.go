package forms

import "fmt"

const (
	FieldCompanyName         = "companyName"
	FieldLegalRepresentative = "legalRepresentative"
	FieldPhone               = "phone"
	FieldConfirmPassword     = "confirmPassword"
	FieldAcceptTerms         = "acceptTerms"
)

var registrationFields = []string{
	FieldCompanyName,
	FieldLegalRepresentative,
	FieldPhone,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
	FieldAcceptTerms,
}

var registrationMessages = map[string]map[ErrorKind]string{
	FieldCompanyName: {
		KindRequired: "Le nom de l'entreprise est requis.",
		KindTooShort: fmt.Sprintf("Le nom de l'entreprise doit contenir au moins %d caractères.", NameMinLength),
	},
	FieldLegalRepresentative: {
		KindRequired: "Le représentant légal est requis.",
		KindTooShort: fmt.Sprintf("Le nom du représentant légal doit contenir au moins %d caractères.", NameMinLength),
	},
	FieldPhone: {
		KindRequired: "Le numéro de téléphone est requis.",
		KindFormat:   "Veuillez saisir un numéro de téléphone valide (ex: 0612345678 ou +33612345678).",
	},
	FieldEmail: {
		KindRequired: "L'adresse email est requise.",
		KindFormat:   "Veuillez saisir une adresse email valide.",
	},
	FieldPassword: {
		KindRequired: "Le mot de passe est requis.",
		KindTooShort: fmt.Sprintf("Le mot de passe doit contenir au moins %d caractères.", RegistrationSecretMinLength),
		KindFormat:   "Le mot de passe doit contenir au moins une majuscule, une minuscule et un chiffre.",
	},
	FieldConfirmPassword: {
		KindRequired: "Veuillez confirmer votre mot de passe.",
		KindMismatch: "Les mots de passe ne correspondent pas.",
	},
	FieldAcceptTerms: {
		KindRequired: "Vous devez accepter les conditions d'utilisation.",
	},
}

// RegistrationForm is the state of the registration form.
type RegistrationForm struct {
	CompanyName         string `form:"companyName" json:"companyName"`
	LegalRepresentative string `form:"legalRepresentative" json:"legalRepresentative"`
	Phone               string `form:"phone" json:"phone"`
	Email               string `form:"email" json:"email"`
	Password            string `form:"password" json:"password"`
	ConfirmPassword     string `form:"confirmPassword" json:"confirmPassword"`
	AcceptTerms         bool   `form:"acceptTerms" json:"acceptTerms"`
}

// RegistrationErrors is the full validation result of a RegistrationForm.
// Cross-field errors live apart from the per-field errors so that a
// resolved mismatch never hides or removes another error on the same field.
type RegistrationErrors struct {
	Fields     FieldErrors
	CrossField FieldErrors
}

func (e RegistrationErrors) Valid() bool {
	return len(e.Fields) == 0 && len(e.CrossField) == 0
}

// Has reports whether field carries kind, either as a field or a
// cross-field error.
func (e RegistrationErrors) Has(field string, kind ErrorKind) bool {
	return e.Fields.Kind(field) == kind || e.CrossField.Kind(field) == kind
}

func (e RegistrationErrors) Status(touched Touched, field string) FieldStatus {
	failed := e.Fields.Kind(field) != KindNone || e.CrossField.Kind(field) != KindNone
	return statusOf(touched, failed, field)
}

func (e RegistrationErrors) Messages() map[string]string {
	return messagesOf(registrationMessages, e.Fields, e.CrossField)
}

// ValidateRegistration recomputes the validation state of the whole form.
// It keeps no state between calls, so a stale mismatch cannot survive an
// edit that fixes it.
func ValidateRegistration(form RegistrationForm) RegistrationErrors {
	errs := RegistrationErrors{
		Fields:     make(FieldErrors),
		CrossField: make(FieldErrors),
	}
	errs.Fields.set(FieldCompanyName, checkMinLength(form.CompanyName, NameMinLength))
	errs.Fields.set(FieldLegalRepresentative, checkMinLength(form.LegalRepresentative, NameMinLength))
	errs.Fields.set(FieldPhone, checkPhone(form.Phone))
	errs.Fields.set(FieldEmail, checkEmail(form.Email))
	errs.Fields.set(FieldPassword, checkStrongSecret(form.Password))
	if form.ConfirmPassword == "" {
		errs.Fields.set(FieldConfirmPassword, KindRequired)
	}
	errs.Fields.set(FieldAcceptTerms, checkRequiredTrue(form.AcceptTerms))

	if form.Password != "" && form.ConfirmPassword != "" && form.Password != form.ConfirmPassword {
		errs.CrossField.set(FieldConfirmPassword, KindMismatch)
	}
	return errs
}

// RegistrationFields lists the fields of the registration form in display order.
func RegistrationFields() []string {
	return append([]string(nil), registrationFields...)
}

// ApplyRegistration returns a copy of form with the event applied.
func ApplyRegistration(form RegistrationForm, ev Event) (RegistrationForm, error) {
	switch ev.Field {
	case FieldCompanyName:
		form.CompanyName = ev.Value
	case FieldLegalRepresentative:
		form.LegalRepresentative = ev.Value
	case FieldPhone:
		form.Phone = ev.Value
	case FieldEmail:
		form.Email = ev.Value
	case FieldPassword:
		form.Password = ev.Value
	case FieldConfirmPassword:
		form.ConfirmPassword = ev.Value
	case FieldAcceptTerms:
		form.AcceptTerms = parseBool(ev.Value)
	default:
		return form, fmt.Errorf("%w: %q", ErrUnknownField, ev.Field)
	}
	return form, nil
}
