package gateway

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/khanghh/cas-portal/params"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoIdentifier  = "admin@example.com"
	DemoSecret      = "password123"
	DemoDisplayName = "Admin User"
	TakenIdentifier = "existing@example.com"
)

type demoUser struct {
	identifier   string
	displayName  string
	passwordHash []byte
}

type SimulatedConfig struct {
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	TokenSecret   string
	TokenTTL      time.Duration
}

// Simulated stands in for the real backend. Each call waits for a fixed
// delay and then answers from fixed literals.
type Simulated struct {
	config SimulatedConfig
	user   demoUser
}

func (g *Simulated) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Simulated) issueToken(identifier string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   identifier,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.config.TokenSecret))
}

func (g *Simulated) Login(ctx context.Context, identifier string, secret string) (*Session, error) {
	if err := g.wait(ctx, g.config.LoginDelay); err != nil {
		return nil, err
	}
	if identifier != g.user.identifier {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(g.user.passwordHash, []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(g.config.TokenTTL)
	token, err := g.issueToken(identifier, expiresAt)
	if err != nil {
		return nil, err
	}
	slog.Debug("Simulated login succeeded", "identifier", identifier)
	return &Session{
		Identifier:  identifier,
		DisplayName: g.user.displayName,
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (g *Simulated) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	if err := g.wait(ctx, g.config.RegisterDelay); err != nil {
		return nil, err
	}
	if req.Email == TakenIdentifier {
		return nil, ErrEmailTaken
	}
	if strings.Contains(strings.ToLower(req.CompanyName), "test") {
		return nil, ErrInvalidCompanyName
	}
	account := &Account{
		ID:          uuid.NewString(),
		Email:       req.Email,
		CompanyName: req.CompanyName,
	}
	slog.Debug("Simulated registration succeeded", "email", req.Email, "accountID", account.ID)
	return account, nil
}

var _ TokenVerifier = (*Simulated)(nil)

// VerifyToken parses a token issued by Login and returns its subject.
func (g *Simulated) VerifyToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(g.config.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (c *SimulatedConfig) sanitize() {
	if c.TokenSecret == "" {
		c.TokenSecret = params.DefaultTokenSecret
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = params.DefaultTokenTTL
	}
}

// NewSimulated returns a gateway answering after the configured delays. A
// zero delay answers immediately.
func NewSimulated(config SimulatedConfig) (*Simulated, error) {
	config.sanitize()
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoSecret), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &Simulated{
		config: config,
		user: demoUser{
			identifier:   DemoIdentifier,
			displayName:  DemoDisplayName,
			passwordHash: hash,
		},
	}, nil
}
