package flow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/gateway"
	"github.com/khanghh/cas-portal/internal/prefs"
)

// LoginSnapshot is an immutable copy of the login view state for rendering.
type LoginSnapshot struct {
	Form     forms.LoginForm
	Errors   forms.LoginErrors
	Status   map[string]forms.FieldStatus
	Messages map[string]string
	InFlight bool
	Error    string
}

// LoginView owns the state of one login form instance.
type LoginView struct {
	gateway  gateway.Gateway
	prefs    prefs.Store
	nav      Navigator
	notifier Notifier

	mu       sync.Mutex
	form     forms.LoginForm
	errs     forms.LoginErrors
	touched  forms.Touched
	inFlight bool
	closed   bool
	errorMsg string
	session  *gateway.Session
}

func (v *LoginView) Apply(events ...forms.Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	form := v.form
	for _, ev := range events {
		next, err := forms.ApplyLogin(form, ev)
		if err != nil {
			return err
		}
		form = next
	}
	for _, ev := range events {
		v.touched.Touch(ev.Field)
	}
	v.form = form
	v.errs = forms.ValidateLogin(form)
	return nil
}

func (v *LoginView) Snapshot() LoginSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

func (v *LoginView) snapshot() LoginSnapshot {
	status := make(map[string]forms.FieldStatus)
	messages := make(map[string]string)
	errMessages := v.errs.Messages()
	for _, field := range forms.LoginFields() {
		status[field] = v.errs.Status(v.touched, field)
		if v.touched[field] && errMessages[field] != "" {
			messages[field] = errMessages[field]
		}
	}
	return LoginSnapshot{
		Form:     v.form,
		Errors:   v.errs,
		Status:   status,
		Messages: messages,
		InFlight: v.inFlight,
		Error:    v.errorMsg,
	}
}

// Submit validates the form and, when valid, calls the gateway. It blocks
// until the gateway answers. The view lock is not held during the call so
// edits, snapshots and Close stay responsive.
func (v *LoginView) Submit(ctx context.Context) error {
	return v.SubmitTo(ctx, v.nav, v.notifier)
}

// SubmitTo is Submit with the outcome of this call delivered to nav and
// notifier instead of the sinks the view was created with.
func (v *LoginView) SubmitTo(ctx context.Context, nav Navigator, notifier Notifier) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	if v.inFlight {
		v.mu.Unlock()
		return ErrSubmitInFlight
	}
	if v.errs = forms.ValidateLogin(v.form); !v.errs.Valid() {
		v.touched.Touch(forms.LoginFields()...)
		v.mu.Unlock()
		return ErrInvalidForm
	}
	v.inFlight = true
	v.errorMsg = ""
	form := v.form
	v.mu.Unlock()

	session, err := v.gateway.Login(ctx, form.Email, form.Password)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
	if v.closed {
		slog.Debug("Discarding stale login response", "email", form.Email)
		return ErrStaleResponse
	}

	if err != nil {
		gwErr := gateway.AsError(err, gateway.MsgLoginFailed)
		v.errorMsg = gwErr.Message
		notifier.Notify(Notification{Severity: SeverityDanger, Title: TitleError, Message: gwErr.Message})
		return gwErr
	}

	v.session = session
	if form.RememberMe {
		err = v.prefs.Save(ctx, session.Identifier)
	} else {
		err = v.prefs.Clear(ctx)
	}
	if err != nil {
		// the login itself succeeded, a failed preference write only loses the convenience
		slog.Error("Failed to update login preference", "email", form.Email, "error", err)
	}

	notifier.Notify(Notification{Severity: SeveritySuccess, Title: TitleSuccess, Message: MsgLoginSucceeded})
	nav.Navigate(DestinationDashboard, "")
	return nil
}

// Close tears the view down. A response still in flight is discarded when
// it arrives.
func (v *LoginView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

// Session returns the session of the last successful login, if any.
func (v *LoginView) Session() *gateway.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session
}

func (v *LoginView) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// NewLoginView creates a login view pre-populated from the stored
// preference. A failing preference store only logs: the form still works.
func NewLoginView(ctx context.Context, gw gateway.Gateway, store prefs.Store, nav Navigator, notifier Notifier) *LoginView {
	v := &LoginView{
		gateway:  gw,
		prefs:    store,
		nav:      nav,
		notifier: notifier,
		touched:  make(forms.Touched),
	}
	rec, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load login preference", "error", err)
	}
	if rec.Remember {
		v.form.RememberMe = true
		if rec.HasIdentifier {
			v.form.Email = rec.Identifier
		}
	}
	v.errs = forms.ValidateLogin(v.form)
	return v
}
