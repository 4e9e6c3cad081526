package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/flow"
	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/middlewares/csrf"
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/render"
)

type RegisterHandler struct {
	*FormViews
}

func NewRegisterHandler(views *FormViews) *RegisterHandler {
	return &RegisterHandler{FormViews: views}
}

func (h *RegisterHandler) renderRegister(ctx *fiber.Ctx, entry *registerEntry, notes []flow.Notification) error {
	pageData := registerPageData(entry.view.Snapshot())
	pageData.CSRFToken = csrf.Get(ctx).Token
	pageData.Flashes = append(sessions.PopFlashes(ctx), toFlashes(notes)...)
	return render.RenderRegister(ctx, pageData)
}

func (h *RegisterHandler) GetRegister(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return redirect(ctx, PathDashboard)
	}
	return h.renderRegister(ctx, h.openRegister(ctx), nil)
}

func (h *RegisterHandler) PostRegister(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsAuthenticated() {
		return redirect(ctx, PathDashboard)
	}

	entry := h.currentRegister(ctx)
	if err := entry.view.Apply(formEvents(ctx, forms.RegistrationFields(), forms.FieldAcceptTerms)...); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// each request records only the outcome of its own submit
	rec := &flow.Recorder{}
	err := entry.view.SubmitTo(ctx.Context(), rec, rec)
	out := rec.Drain()
	switch {
	case err == nil:
		h.registerViews.Remove(sessions.ID(ctx))
		for _, flash := range toFlashes(out.Notifications) {
			sessions.AddFlash(ctx, flash)
		}
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
		return redirect(ctx, PathRegister)
	default:
		ctx.Status(fiber.StatusBadRequest)
	}
	return h.renderRegister(ctx, entry, out.Notifications)
}
