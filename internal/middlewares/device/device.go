// Package device tags each browser with a long-lived id. Preferences are
// keyed by it, so they outlive sessions the way browser storage does.
package device

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/khanghh/cas-portal/params"
)

const deviceContextKey = "device_id"

func ID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(deviceContextKey).(string)
	return id
}

type Config struct {
	CookieName   string
	CookieSecure bool
	MaxAge       time.Duration
}

func New(config ...Config) fiber.Handler {
	cfg := Config{
		CookieName: params.DeviceCookieName,
		MaxAge:     params.DeviceCookieMaxAge,
	}
	if len(config) > 0 {
		cfg = config[0]
	}
	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HTTPOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		ctx.Locals(deviceContextKey, id)
		return ctx.Next()
	}
}
