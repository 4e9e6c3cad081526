package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/gateway"
	"github.com/khanghh/cas-portal/internal/prefs"
)

// blockingGateway wraps a gateway and holds every call until release is
// closed.
type blockingGateway struct {
	gateway.Gateway
	started chan struct{}
	release chan struct{}
}

func (g *blockingGateway) Login(ctx context.Context, identifier, secret string) (*gateway.Session, error) {
	g.started <- struct{}{}
	<-g.release
	return g.Gateway.Login(ctx, identifier, secret)
}

func (g *blockingGateway) Register(ctx context.Context, req gateway.RegisterRequest) (*gateway.Account, error) {
	g.started <- struct{}{}
	<-g.release
	return g.Gateway.Register(ctx, req)
}

func newTestGateway(t *testing.T) *gateway.Simulated {
	t.Helper()
	gw, err := gateway.NewSimulated(gateway.SimulatedConfig{TokenSecret: "test-secret"})
	if err != nil {
		t.Fatalf("NewSimulated failed: %v", err)
	}
	return gw
}

func newBlockingGateway(t *testing.T) *blockingGateway {
	return &blockingGateway{
		Gateway: newTestGateway(t),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func loginEvents(email, password, remember string) []forms.Event {
	return []forms.Event{
		{Field: forms.FieldEmail, Value: email},
		{Field: forms.FieldPassword, Value: password},
		{Field: forms.FieldRememberMe, Value: remember},
	}
}

func TestLoginSuccessRemembers(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryProvider().Open("device")
	rec := &Recorder{}
	view := NewLoginView(ctx, newTestGateway(t), store, rec, rec)

	if err := view.Apply(loginEvents("admin@example.com", "password123", "true")...); err != nil {
		t.Fatal(err)
	}
	if err := view.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	out := rec.Drain()
	if !out.Navigated || out.Destination != DestinationDashboard {
		t.Fatalf("expected navigation to dashboard, got %+v", out)
	}
	if len(out.Notifications) != 1 || out.Notifications[0].Severity != SeveritySuccess {
		t.Fatalf("expected one success notification, got %+v", out.Notifications)
	}
	saved, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.Remember || saved.Identifier != "admin@example.com" {
		t.Fatalf("preference not saved: %+v", saved)
	}
	if view.Snapshot().InFlight {
		t.Fatal("in-flight flag must be cleared")
	}

	// a fresh view is pre-populated from the preference
	next := NewLoginView(ctx, newTestGateway(t), store, rec, rec)
	snap := next.Snapshot()
	if !snap.Form.RememberMe || snap.Form.Email != "admin@example.com" {
		t.Fatalf("view not pre-populated: %+v", snap.Form)
	}
	if snap.Status[forms.FieldEmail] != forms.StatusNeutral {
		t.Fatal("pre-populated field must stay neutral until touched")
	}
}

func TestLoginSuccessWithoutRememberClears(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryProvider().Open("device")
	if err := store.Save(ctx, "old@example.com"); err != nil {
		t.Fatal(err)
	}
	rec := &Recorder{}
	view := NewLoginView(ctx, newTestGateway(t), store, rec, rec)
	if err := view.Apply(loginEvents("admin@example.com", "password123", "false")...); err != nil {
		t.Fatal(err)
	}
	if err := view.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	saved, _ := store.Load(ctx)
	if saved.Remember || saved.HasIdentifier {
		t.Fatalf("preference should be cleared, got %+v", saved)
	}
}

func TestLoginFailure(t *testing.T) {
	ctx := context.Background()
	rec := &Recorder{}
	view := NewLoginView(ctx, newTestGateway(t), prefs.NewMemoryProvider().Open("device"), rec, rec)
	if err := view.Apply(loginEvents("wrong@email.com", "wrongpass", "")...); err != nil {
		t.Fatal(err)
	}

	err := view.Submit(ctx)
	if !errors.Is(err, gateway.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	snap := view.Snapshot()
	if snap.InFlight {
		t.Fatal("in-flight flag must be cleared after failure")
	}
	if snap.Error != "Identifiants incorrects. Veuillez réessayer." {
		t.Fatalf("unexpected error string %q", snap.Error)
	}
	out := rec.Drain()
	if out.Navigated {
		t.Fatal("failure must not navigate")
	}
	if len(out.Notifications) != 1 || out.Notifications[0].Severity != SeverityDanger {
		t.Fatalf("expected danger notification, got %+v", out.Notifications)
	}

	// the form stays usable
	if err := view.Apply(loginEvents("admin@example.com", "password123", "")...); err != nil {
		t.Fatal(err)
	}
	if err := view.Submit(ctx); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if view.Snapshot().Error != "" {
		t.Fatal("error string must be reset on submit")
	}
}

func TestLoginInvalidFormTouchesAll(t *testing.T) {
	ctx := context.Background()
	rec := &Recorder{}
	view := NewLoginView(ctx, newTestGateway(t), prefs.NewMemoryProvider().Open("device"), rec, rec)
	if s := view.Snapshot().Status[forms.FieldEmail]; s != forms.StatusNeutral {
		t.Fatalf("expected neutral before submit, got %s", s)
	}
	if err := view.Submit(ctx); !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	snap := view.Snapshot()
	if snap.Status[forms.FieldEmail] != forms.StatusInvalid || snap.Status[forms.FieldPassword] != forms.StatusInvalid {
		t.Fatalf("all fields should be marked touched, got %v", snap.Status)
	}
	if snap.Messages[forms.FieldEmail] == "" {
		t.Fatal("expected inline message once touched")
	}
	if out := rec.Drain(); out.Navigated || len(out.Notifications) != 0 {
		t.Fatalf("invalid submit must not reach the gateway, got %+v", out)
	}
}

func TestSubmitInFlightGate(t *testing.T) {
	ctx := context.Background()
	gw := newBlockingGateway(t)
	rec := &Recorder{}
	view := NewLoginView(ctx, gw, prefs.NewMemoryProvider().Open("device"), rec, rec)
	if err := view.Apply(loginEvents("admin@example.com", "password123", "")...); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- view.Submit(ctx) }()
	<-gw.started

	if !view.Snapshot().InFlight {
		t.Fatal("expected in-flight flag while the gateway is pending")
	}
	if err := view.Submit(ctx); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(gw.release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("first submit failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not complete")
	}
	if view.Snapshot().InFlight {
		t.Fatal("in-flight flag must be cleared")
	}
}

func TestInterleavedSubmitsKeepTheirOwnOutcome(t *testing.T) {
	ctx := context.Background()
	gw := newBlockingGateway(t)
	view := NewLoginView(ctx, gw, prefs.NewMemoryProvider().Open("device"), Discard, Discard)
	if err := view.Apply(loginEvents("admin@example.com", "password123", "")...); err != nil {
		t.Fatal(err)
	}

	first, second := &Recorder{}, &Recorder{}
	done := make(chan error, 1)
	go func() { done <- view.SubmitTo(ctx, first, first) }()
	<-gw.started

	if err := view.SubmitTo(ctx, second, second); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	if out := second.Drain(); out.Navigated || len(out.Notifications) != 0 {
		t.Fatalf("rejected submit must not receive an outcome, got %+v", out)
	}
	out := first.Drain()
	if !out.Navigated || out.Destination != DestinationDashboard {
		t.Fatalf("expected first submit to navigate to dashboard, got %+v", out)
	}
	if len(out.Notifications) != 1 || out.Notifications[0].Message != MsgLoginSucceeded {
		t.Fatalf("expected success notification on first submit, got %+v", out.Notifications)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	gw := newBlockingGateway(t)
	store := prefs.NewMemoryProvider().Open("device")
	rec := &Recorder{}
	view := NewLoginView(ctx, gw, store, rec, rec)
	if err := view.Apply(loginEvents("admin@example.com", "password123", "true")...); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- view.Submit(ctx) }()
	<-gw.started
	view.Close()
	close(gw.release)

	if err := <-done; !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if out := rec.Drain(); out.Navigated || len(out.Notifications) != 0 {
		t.Fatalf("stale response must not navigate or notify, got %+v", out)
	}
	saved, _ := store.Load(ctx)
	if saved.Remember {
		t.Fatal("stale response must not write the preference")
	}
	if err := view.Submit(ctx); !errors.Is(err, ErrViewClosed) {
		t.Fatalf("expected ErrViewClosed, got %v", err)
	}
}

func validRegistrationEvents(company string) []forms.Event {
	return []forms.Event{
		{Field: forms.FieldCompanyName, Value: company},
		{Field: forms.FieldLegalRepresentative, Value: "John Doe"},
		{Field: forms.FieldPhone, Value: "+33612345678"},
		{Field: forms.FieldEmail, Value: "john@acme.fr"},
		{Field: forms.FieldPassword, Value: "StrongPassword123"},
		{Field: forms.FieldConfirmPassword, Value: "StrongPassword123"},
		{Field: forms.FieldAcceptTerms, Value: "on"},
	}
}

func TestRegisterSuccess(t *testing.T) {
	rec := &Recorder{}
	view := NewRegisterView(newTestGateway(t), rec, rec)
	if err := view.Apply(validRegistrationEvents("Acme")...); err != nil {
		t.Fatal(err)
	}
	if err := view.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	out := rec.Drain()
	if !out.Navigated || out.Destination != DestinationLogin || out.Message != MsgAccountCreated {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestRegisterInvalidCompanyName(t *testing.T) {
	rec := &Recorder{}
	view := NewRegisterView(newTestGateway(t), rec, rec)
	if err := view.Apply(validRegistrationEvents("Test Company")...); err != nil {
		t.Fatal(err)
	}
	err := view.Submit(context.Background())
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) || gwErr.Kind != gateway.KindInvalidCompanyName {
		t.Fatalf("expected invalid company name, got %v", err)
	}
	snap := view.Snapshot()
	if snap.Error != "Nom d'entreprise invalide." || snap.InFlight {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if rec.Drain().Navigated {
		t.Fatal("failure must not navigate")
	}
}

func TestRegisterMismatchAndStrength(t *testing.T) {
	rec := &Recorder{}
	view := NewRegisterView(newTestGateway(t), rec, rec)
	if s := view.Snapshot().Strength; s.Show {
		t.Fatal("strength must be hidden for an empty password")
	}
	err := view.Apply(
		forms.Event{Field: forms.FieldPassword, Value: "StrongPassword123"},
		forms.Event{Field: forms.FieldConfirmPassword, Value: "DifferentPassword123"},
	)
	if err != nil {
		t.Fatal(err)
	}
	snap := view.Snapshot()
	if !snap.Errors.Has(forms.FieldConfirmPassword, forms.KindMismatch) {
		t.Fatal("expected mismatch")
	}
	if snap.Strength.Score != 4 || snap.Strength.Percentage != 80 {
		t.Fatalf("unexpected strength %+v", snap.Strength)
	}

	if err := view.Apply(forms.Event{Field: forms.FieldConfirmPassword, Value: "StrongPassword123"}); err != nil {
		t.Fatal(err)
	}
	snap = view.Snapshot()
	if snap.Errors.Has(forms.FieldConfirmPassword, forms.KindMismatch) {
		t.Fatal("mismatch should be cleared")
	}
	if snap.Status[forms.FieldConfirmPassword] != forms.StatusValid {
		t.Fatalf("confirm field should be valid, got %s", snap.Status[forms.FieldConfirmPassword])
	}
}

func TestApplyUnknownFieldKeepsState(t *testing.T) {
	rec := &Recorder{}
	view := NewRegisterView(newTestGateway(t), rec, rec)
	err := view.Apply(
		forms.Event{Field: forms.FieldCompanyName, Value: "Acme"},
		forms.Event{Field: "nope", Value: "x"},
	)
	if !errors.Is(err, forms.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if view.Snapshot().Form.CompanyName != "" {
		t.Fatal("a rejected batch must not be applied partially")
	}
}

func TestRegistry(t *testing.T) {
	rec := &Recorder{}
	reg := NewRegistry[*RegisterView]()
	first := NewRegisterView(newTestGateway(t), rec, rec)
	reg.Replace("sid", first)
	if got, ok := reg.Get("sid"); !ok || got != first {
		t.Fatal("expected registered view")
	}

	second := NewRegisterView(newTestGateway(t), rec, rec)
	reg.Replace("sid", second)
	if !first.Closed() {
		t.Fatal("replaced view must be closed")
	}

	if n := reg.Sweep(time.Hour); n != 0 {
		t.Fatalf("nothing should be swept, got %d", n)
	}
	if n := reg.Sweep(-time.Second); n != 1 || reg.Len() != 0 {
		t.Fatalf("expected idle view swept, got %d (len %d)", n, reg.Len())
	}
	if !second.Closed() {
		t.Fatal("swept view must be closed")
	}
	if _, ok := reg.Get("sid"); ok {
		t.Fatal("swept view must be gone")
	}
}
