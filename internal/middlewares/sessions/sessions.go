package sessions

import (
	"encoding/gob"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	injectSessionKey  = "session"
	destroyedFlagKey  = "session_destroyed"
	sessionDataKey    = "data"
	sessionFlashesKey = "flashes"
)

type SessionData struct {
	IP          string    // client ip address
	Email       string    // logged in identifier
	DisplayName string    // display name returned by the gateway
	Token       string    // gateway session token
	LoginTime   time.Time // last login time
	LastSeen    time.Time // last request time
}

func (s *SessionData) IsAuthenticated() bool {
	return s.Email != ""
}

// Flash is a notification kept until the next rendered page.
type Flash struct {
	Severity string
	Title    string
	Message  string
}

func init() {
	gob.Register(SessionData{})
	gob.Register([]Flash{})
}

func raw(ctx *fiber.Ctx) *session.Session {
	return ctx.Locals(injectSessionKey).(*session.Session)
}

func ID(ctx *fiber.Ctx) string {
	return raw(ctx).ID()
}

func Get(ctx *fiber.Ctx) SessionData {
	data, _ := raw(ctx).Get(sessionDataKey).(SessionData)
	return data
}

func Set(ctx *fiber.Ctx, data SessionData) {
	raw(ctx).Set(sessionDataKey, data)
}

func Value(ctx *fiber.Ctx, key string) any {
	return raw(ctx).Get(key)
}

func SetValue(ctx *fiber.Ctx, key string, val any) {
	raw(ctx).Set(key, val)
}

func AddFlash(ctx *fiber.Ctx, flash Flash) {
	sess := raw(ctx)
	flashes, _ := sess.Get(sessionFlashesKey).([]Flash)
	sess.Set(sessionFlashesKey, append(flashes, flash))
}

// PopFlashes returns the pending flashes and removes them from the session.
func PopFlashes(ctx *fiber.Ctx) []Flash {
	sess := raw(ctx)
	flashes, _ := sess.Get(sessionFlashesKey).([]Flash)
	sess.Delete(sessionFlashesKey)
	return flashes
}

func Destroy(ctx *fiber.Ctx) error {
	ctx.Locals(destroyedFlagKey, true)
	return raw(ctx).Destroy()
}

// Login regenerates the session id and stores data, so an id issued before
// authentication is never reused after it.
func Login(ctx *fiber.Ctx, data SessionData) error {
	sess := raw(ctx)
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionDataKey, data)
	return nil
}

func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return err
		}

		ctx.Locals(injectSessionKey, sess)
		if err := ctx.Next(); err != nil {
			return err
		}

		if destroyed, _ := ctx.Locals(destroyedFlagKey).(bool); destroyed {
			return nil
		}
		if sess.Fresh() && len(sess.Keys()) == 0 {
			return nil
		}
		if data, ok := sess.Get(sessionDataKey).(SessionData); ok {
			data.LastSeen = time.Now()
			sess.Set(sessionDataKey, data)
		}
		return sess.Save()
	}
}
