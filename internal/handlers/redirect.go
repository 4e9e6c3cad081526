package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/flow"
)

const (
	PathLogin     = "/auth/login"
	PathRegister  = "/auth/register"
	PathDashboard = "/dashboard"
)

func redirect(ctx *fiber.Ctx, location string, pairs ...any) error {
	url, err := url.Parse(location)
	if err != nil {
		return err
	}

	query := url.Query()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return fmt.Errorf("key at position %d is not a string", i)
		}
		if value := fmt.Sprint(pairs[i+1]); value != "" {
			query.Set(key, value)
		}
	}

	url.RawQuery = query.Encode()
	return ctx.Redirect(url.String())
}

// navigate turns a flow destination into a redirect.
func navigate(ctx *fiber.Ctx, out flow.Outcome) error {
	switch out.Destination {
	case flow.DestinationDashboard:
		return redirect(ctx, PathDashboard)
	case flow.DestinationLogin:
		return redirect(ctx, PathLogin, "message", out.Message)
	default:
		return fmt.Errorf("unknown destination %q", out.Destination)
	}
}
