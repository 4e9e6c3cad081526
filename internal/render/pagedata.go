package render

import (
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/strength"
)

// Field is the render state of one input.
type Field struct {
	Value   string
	Status  string
	Message string
}

type LoginPageData struct {
	CSRFToken  string
	Email      Field
	Password   Field
	RememberMe bool
	LoginError string
	InfoMsg    string
	InFlight   bool
	Flashes    []sessions.Flash
}

type RegisterPageData struct {
	CSRFToken           string
	CompanyName         Field
	LegalRepresentative Field
	Phone               Field
	Email               Field
	Password            Field
	ConfirmPassword     Field
	AcceptTerms         bool
	AcceptTermsField    Field
	Strength            strength.Result
	RegisterError       string
	InFlight            bool
	Flashes             []sessions.Flash
}

type DashboardPageData struct {
	CSRFToken   string
	Email       string
	DisplayName string
	Flashes     []sessions.Flash
}
