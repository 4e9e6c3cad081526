package flow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/gateway"
	"github.com/khanghh/cas-portal/internal/strength"
)

type RegisterSnapshot struct {
	Form     forms.RegistrationForm
	Errors   forms.RegistrationErrors
	Status   map[string]forms.FieldStatus
	Messages map[string]string
	Strength strength.Result
	InFlight bool
	Error    string
}

// RegisterView owns the state of one registration form instance.
type RegisterView struct {
	gateway  gateway.Gateway
	nav      Navigator
	notifier Notifier

	mu       sync.Mutex
	form     forms.RegistrationForm
	errs     forms.RegistrationErrors
	touched  forms.Touched
	inFlight bool
	closed   bool
	errorMsg string
}

func (v *RegisterView) Apply(events ...forms.Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	form := v.form
	for _, ev := range events {
		next, err := forms.ApplyRegistration(form, ev)
		if err != nil {
			return err
		}
		form = next
	}
	for _, ev := range events {
		v.touched.Touch(ev.Field)
	}
	v.form = form
	v.errs = forms.ValidateRegistration(form)
	return nil
}

func (v *RegisterView) Snapshot() RegisterSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	status := make(map[string]forms.FieldStatus)
	messages := make(map[string]string)
	errMessages := v.errs.Messages()
	for _, field := range forms.RegistrationFields() {
		status[field] = v.errs.Status(v.touched, field)
		if v.touched[field] && errMessages[field] != "" {
			messages[field] = errMessages[field]
		}
	}
	return RegisterSnapshot{
		Form:     v.form,
		Errors:   v.errs,
		Status:   status,
		Messages: messages,
		Strength: strength.Evaluate(v.form.Password),
		InFlight: v.inFlight,
		Error:    v.errorMsg,
	}
}

func (v *RegisterView) Submit(ctx context.Context) error {
	return v.SubmitTo(ctx, v.nav, v.notifier)
}

// SubmitTo is Submit with the outcome of this call delivered to nav and
// notifier instead of the sinks the view was created with.
func (v *RegisterView) SubmitTo(ctx context.Context, nav Navigator, notifier Notifier) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	if v.inFlight {
		v.mu.Unlock()
		return ErrSubmitInFlight
	}
	if v.errs = forms.ValidateRegistration(v.form); !v.errs.Valid() {
		v.touched.Touch(forms.RegistrationFields()...)
		v.mu.Unlock()
		return ErrInvalidForm
	}
	v.inFlight = true
	v.errorMsg = ""
	form := v.form
	v.mu.Unlock()

	account, err := v.gateway.Register(ctx, gateway.RegisterRequest{
		CompanyName:         form.CompanyName,
		LegalRepresentative: form.LegalRepresentative,
		Phone:               form.Phone,
		Email:               form.Email,
		Password:            form.Password,
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
	if v.closed {
		slog.Debug("Discarding stale registration response", "email", form.Email)
		return ErrStaleResponse
	}

	if err != nil {
		gwErr := gateway.AsError(err, gateway.MsgRegisterFailed)
		v.errorMsg = gwErr.Message
		notifier.Notify(Notification{Severity: SeverityDanger, Title: TitleError, Message: gwErr.Message})
		return gwErr
	}

	slog.Info("Account registered", "accountID", account.ID, "email", account.Email)
	notifier.Notify(Notification{Severity: SeveritySuccess, Title: TitleSuccess, Message: MsgRegisterSucceeded})
	nav.Navigate(DestinationLogin, MsgAccountCreated)
	return nil
}

func (v *RegisterView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *RegisterView) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func NewRegisterView(gw gateway.Gateway, nav Navigator, notifier Notifier) *RegisterView {
	v := &RegisterView{
		gateway:  gw,
		nav:      nav,
		notifier: notifier,
		touched:  make(forms.Touched),
	}
	v.errs = forms.ValidateRegistration(v.form)
	return v
}
