package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/flow"
	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/middlewares/csrf"
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/render"
)

type LoginHandler struct {
	*FormViews
}

func NewLoginHandler(views *FormViews) *LoginHandler {
	return &LoginHandler{FormViews: views}
}

func (h *LoginHandler) renderLogin(ctx *fiber.Ctx, entry *loginEntry, notes []flow.Notification) error {
	pageData := loginPageData(entry.view.Snapshot())
	pageData.CSRFToken = csrf.Get(ctx).Token
	pageData.InfoMsg = ctx.Query("message")
	pageData.Flashes = append(sessions.PopFlashes(ctx), toFlashes(notes)...)
	return render.RenderLogin(ctx, pageData)
}

func (h *LoginHandler) GetLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return redirect(ctx, PathDashboard)
	}
	return h.renderLogin(ctx, h.openLogin(ctx), nil)
}

func (h *LoginHandler) PostLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return redirect(ctx, PathDashboard)
	}

	entry := h.currentLogin(ctx)
	if err := entry.view.Apply(formEvents(ctx, forms.LoginFields(), forms.FieldRememberMe)...); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// each request records only the outcome of its own submit
	rec := &flow.Recorder{}
	err := entry.view.SubmitTo(ctx.Context(), rec, rec)
	out := rec.Drain()
	switch {
	case err == nil:
		sid := sessions.ID(ctx)
		gwSession := entry.view.Session()
		h.closeAll(sid)
		if err := sessions.Login(ctx, sessions.SessionData{
			IP:          ctx.IP(),
			Email:       gwSession.Identifier,
			DisplayName: gwSession.DisplayName,
			Token:       gwSession.Token,
			LoginTime:   time.Now(),
		}); err != nil {
			return err
		}
		for _, flash := range toFlashes(out.Notifications) {
			sessions.AddFlash(ctx, flash)
		}
		slog.Info("User logged in", "email", gwSession.Identifier, "ip", ctx.IP())
		return navigate(ctx, out)
	case errors.Is(err, flow.ErrInvalidForm):
		ctx.Status(fiber.StatusUnprocessableEntity)
	case errors.Is(err, flow.ErrSubmitInFlight):
		ctx.Status(fiber.StatusConflict)
		out.Notifications = append(out.Notifications, flow.Notification{
			Severity: flow.SeverityDanger,
			Title:    flow.TitleError,
			Message:  MsgSubmitInFlight,
		})
	case errors.Is(err, flow.ErrStaleResponse), errors.Is(err, flow.ErrViewClosed):
		sessions.AddFlash(ctx, sessions.Flash{Severity: string(flow.SeverityDanger), Title: flow.TitleError, Message: MsgViewExpired})
		return redirect(ctx, PathLogin)
	default:
		slog.Debug("Login rejected", "email", entry.view.Snapshot().Form.Email, "error", err)
		ctx.Status(fiber.StatusUnauthorized)
	}
	return h.renderLogin(ctx, entry, out.Notifications)
}
