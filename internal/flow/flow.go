// Package flow drives the submit lifecycle of the login and registration
// forms: full revalidation on every edit, a single submission in flight,
// and suppression of responses that arrive after the view is gone.
package flow

// Destination is a view the user is sent to after a successful submit.
type Destination string

const (
	DestinationDashboard Destination = "dashboard"
	DestinationLogin     Destination = "login"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Notification is a transient toast shown to the user.
type Notification struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// Navigator and Notifier are called with the view locked and must not call
// back into the view.
type Navigator interface {
	Navigate(dest Destination, message string)
}

type Notifier interface {
	Notify(n Notification)
}

var (
	MsgLoginSucceeded    = "Connexion réussie !"
	MsgRegisterSucceeded = "Compte créé avec succès !"
	MsgAccountCreated    = "Compte créé avec succès. Veuillez vous connecter."
	TitleSuccess         = "Succès"
	TitleError           = "Erreur"
)

// Discard drops every navigation and notification.
var Discard discard

type discard struct{}

func (discard) Navigate(Destination, string) {}
func (discard) Notify(Notification)          {}
