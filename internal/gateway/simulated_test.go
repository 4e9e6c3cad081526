package gateway

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestGateway(t *testing.T) *Simulated {
	t.Helper()
	gw, err := NewSimulated(SimulatedConfig{TokenSecret: "test-secret"})
	if err != nil {
		t.Fatalf("NewSimulated failed: %v", err)
	}
	return gw
}

func TestLoginSuccess(t *testing.T) {
	gw := newTestGateway(t)
	session, err := gw.Login(context.Background(), DemoIdentifier, DemoSecret)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Identifier != DemoIdentifier || session.DisplayName != DemoDisplayName {
		t.Fatalf("unexpected session %+v", session)
	}
	subject, err := gw.VerifyToken(session.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if subject != DemoIdentifier {
		t.Fatalf("got subject %q", subject)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	gw := newTestGateway(t)
	tests := []struct{ identifier, secret string }{
		{"wrong@email.com", "wrongpass"},
		{DemoIdentifier, "wrongpass"},
		{"wrong@email.com", DemoSecret},
	}
	for _, tt := range tests {
		_, err := gw.Login(context.Background(), tt.identifier, tt.secret)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected invalid credentials, got %v", tt.identifier, tt.secret, err)
		}
		gwErr := AsError(err, MsgLoginFailed)
		if gwErr.Kind != KindInvalidCredentials || gwErr.Message != "Identifiants incorrects. Veuillez réessayer." {
			t.Fatalf("unexpected error %+v", gwErr)
		}
	}
}

func TestRegister(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.Register(ctx, RegisterRequest{Email: TakenIdentifier, CompanyName: "Acme"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}

	_, err = gw.Register(ctx, RegisterRequest{Email: "new@acme.fr", CompanyName: "Test Company"})
	if !errors.Is(err, ErrInvalidCompanyName) {
		t.Fatalf("expected invalid company name, got %v", err)
	}
	if msg := AsError(err, MsgRegisterFailed).Message; msg != "Nom d'entreprise invalide." {
		t.Fatalf("unexpected message %q", msg)
	}

	_, err = gw.Register(ctx, RegisterRequest{Email: "new@acme.fr", CompanyName: "My LATEST Startup"})
	if !errors.Is(err, ErrInvalidCompanyName) {
		t.Fatalf("company name check must be case-insensitive, got %v", err)
	}

	account, err := gw.Register(ctx, RegisterRequest{Email: "new@acme.fr", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if account.Email != "new@acme.fr" || account.CompanyName != "Acme" || account.ID == "" {
		t.Fatalf("unexpected account %+v", account)
	}
}

func TestDelayHonoursContext(t *testing.T) {
	gw, err := NewSimulated(SimulatedConfig{LoginDelay: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = gw.Login(ctx, DemoIdentifier, DemoSecret)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestAsErrorUnknown(t *testing.T) {
	cause := errors.New("connection reset")
	gwErr := AsError(cause, MsgLoginFailed)
	if gwErr.Kind != KindUnknown || gwErr.Message != MsgLoginFailed || !errors.Is(gwErr, cause) {
		t.Fatalf("unexpected error %+v", gwErr)
	}
}
