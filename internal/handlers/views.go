package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/common"
	"github.com/khanghh/cas-portal/internal/flow"
	"github.com/khanghh/cas-portal/internal/gateway"
	"github.com/khanghh/cas-portal/internal/middlewares/device"
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/prefs"
)

type loginEntry struct {
	view *flow.LoginView
}

func (e *loginEntry) Close()       { e.view.Close() }
func (e *loginEntry) Closed() bool { return e.view.Closed() }

type registerEntry struct {
	view *flow.RegisterView
}

func (e *registerEntry) Close()       { e.view.Close() }
func (e *registerEntry) Closed() bool { return e.view.Closed() }

// FormViews keeps the live form views of every browser session.
type FormViews struct {
	gateway       gateway.Gateway
	prefs         prefs.Provider
	namespaceKey  string
	loginViews    *flow.Registry[*loginEntry]
	registerViews *flow.Registry[*registerEntry]
}

func (f *FormViews) newLoginEntry(ctx *fiber.Ctx) *loginEntry {
	store := f.prefs.Open(common.Namespace(f.namespaceKey, device.ID(ctx)))
	return &loginEntry{
		view: flow.NewLoginView(ctx.Context(), f.gateway, store, flow.Discard, flow.Discard),
	}
}

func (f *FormViews) newRegisterEntry() *registerEntry {
	return &registerEntry{
		view: flow.NewRegisterView(f.gateway, flow.Discard, flow.Discard),
	}
}

// openLogin replaces the login view of the session with a fresh one. The
// previous view is closed, so its pending response is dropped.
func (f *FormViews) openLogin(ctx *fiber.Ctx) *loginEntry {
	entry := f.newLoginEntry(ctx)
	f.loginViews.Replace(sessions.ID(ctx), entry)
	return entry
}

// currentLogin returns the login view of the session, creating one when the
// session has none.
func (f *FormViews) currentLogin(ctx *fiber.Ctx) *loginEntry {
	if entry, ok := f.loginViews.Get(sessions.ID(ctx)); ok {
		return entry
	}
	return f.openLogin(ctx)
}

func (f *FormViews) openRegister(ctx *fiber.Ctx) *registerEntry {
	entry := f.newRegisterEntry()
	f.registerViews.Replace(sessions.ID(ctx), entry)
	return entry
}

func (f *FormViews) currentRegister(ctx *fiber.Ctx) *registerEntry {
	if entry, ok := f.registerViews.Get(sessions.ID(ctx)); ok {
		return entry
	}
	return f.openRegister(ctx)
}

// closeAll drops every view of the session.
func (f *FormViews) closeAll(sessionID string) {
	f.loginViews.Remove(sessionID)
	f.registerViews.Remove(sessionID)
}

// Sweep drops views idle for longer than maxIdle.
func (f *FormViews) Sweep(maxIdle time.Duration) int {
	return f.loginViews.Sweep(maxIdle) + f.registerViews.Sweep(maxIdle)
}

// RunSweeper sweeps idle views every interval until ctx is done.
func (f *FormViews) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Sweep(maxIdle)
		}
	}
}

// NewFormViews creates the view registries. namespaceKey keys the hash that
// maps device ids to preference namespaces.
func NewFormViews(gw gateway.Gateway, provider prefs.Provider, namespaceKey string) *FormViews {
	return &FormViews{
		gateway:       gw,
		prefs:         provider,
		namespaceKey:  namespaceKey,
		loginViews:    flow.NewRegistry[*loginEntry](),
		registerViews: flow.NewRegistry[*registerEntry](),
	}
}
