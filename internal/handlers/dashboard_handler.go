package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/gateway"
	"github.com/khanghh/cas-portal/internal/middlewares/csrf"
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/render"
)

type DashboardHandler struct {
	*FormViews
}

func NewDashboardHandler(views *FormViews) *DashboardHandler {
	return &DashboardHandler{FormViews: views}
}

func (h *DashboardHandler) GetHome(ctx *fiber.Ctx) error {
	return redirect(ctx, PathLogin)
}

// tokenValid checks the backend token stored at login when the backend can
// verify it.
func (h *DashboardHandler) tokenValid(session sessions.SessionData) bool {
	verifier, ok := h.gateway.(gateway.TokenVerifier)
	if !ok {
		return true
	}
	subject, err := verifier.VerifyToken(session.Token)
	if err != nil {
		slog.Debug("Failed to verify session token", "email", session.Email, "error", err)
		return false
	}
	return subject == session.Email
}

func (h *DashboardHandler) GetDashboard(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if !session.IsAuthenticated() {
		return redirect(ctx, PathLogin)
	}
	if !h.tokenValid(session) {
		slog.Info("Session token rejected", "email", session.Email, "ip", ctx.IP())
		h.closeAll(sessions.ID(ctx))
		if err := sessions.Destroy(ctx); err != nil {
			return err
		}
		return redirect(ctx, PathLogin)
	}
	return render.RenderDashboard(ctx, render.DashboardPageData{
		CSRFToken:   csrf.Get(ctx).Token,
		Email:       session.Email,
		DisplayName: session.DisplayName,
		Flashes:     sessions.PopFlashes(ctx),
	})
}

func (h *DashboardHandler) PostLogout(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	h.closeAll(sessions.ID(ctx))
	if err := sessions.Destroy(ctx); err != nil {
		return err
	}
	if session.IsAuthenticated() {
		slog.Info("User logged out", "email", session.Email, "ip", ctx.IP())
	}
	return redirect(ctx, PathLogin)
}
