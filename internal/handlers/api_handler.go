package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/render"
	"github.com/khanghh/cas-portal/internal/strength"
)

type fieldResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type validateResponse struct {
	Valid    bool                     `json:"valid"`
	Fields   map[string]fieldResponse `json:"fields"`
	Strength *strengthResponse        `json:"strength,omitempty"`
}

type strengthResponse struct {
	Show       bool   `json:"show"`
	Score      int    `json:"score"`
	Percentage int    `json:"percentage"`
	Tier       string `json:"tier"`
	Label      string `json:"label"`
	Class      string `json:"class"`
	HTML       string `json:"html,omitempty"`
}

type strengthRequest struct {
	Password string `json:"password" form:"password"`
}

func fieldsResponse(fields []string, status map[string]forms.FieldStatus, messages map[string]string) map[string]fieldResponse {
	resp := make(map[string]fieldResponse, len(fields))
	for _, field := range fields {
		resp[field] = fieldResponse{
			Status:  status[field].String(),
			Message: messages[field],
		}
	}
	return resp
}

func strengthOf(result strength.Result) *strengthResponse {
	resp := &strengthResponse{
		Show:       result.Show,
		Score:      result.Score,
		Percentage: result.Percentage,
		Label:      result.Label,
		Class:      result.Class,
	}
	if result.Show {
		resp.Tier = result.Tier.String()
	}
	return resp
}

// APIHandler serves live validation for the form pages.
type APIHandler struct {
	*FormViews
}

func NewAPIHandler(views *FormViews) *APIHandler {
	return &APIHandler{FormViews: views}
}

func parseEvents(ctx *fiber.Ctx) ([]forms.Event, error) {
	var events []forms.Event
	var single forms.Event
	if err := ctx.BodyParser(&single); err == nil && single.Field != "" {
		return []forms.Event{single}, nil
	}
	if err := ctx.BodyParser(&events); err != nil || len(events) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgInvalidRequest)
	}
	return events, nil
}

func (h *APIHandler) PostValidateLogin(ctx *fiber.Ctx) error {
	events, err := parseEvents(ctx)
	if err != nil {
		return err
	}
	entry := h.currentLogin(ctx)
	if err := entry.view.Apply(events...); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	snap := entry.view.Snapshot()
	return ctx.JSON(validateResponse{
		Valid:  snap.Errors.Valid(),
		Fields: fieldsResponse(forms.LoginFields(), snap.Status, snap.Messages),
	})
}

func (h *APIHandler) PostValidateRegister(ctx *fiber.Ctx) error {
	events, err := parseEvents(ctx)
	if err != nil {
		return err
	}
	entry := h.currentRegister(ctx)
	if err := entry.view.Apply(events...); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	snap := entry.view.Snapshot()
	return ctx.JSON(validateResponse{
		Valid:    snap.Errors.Valid(),
		Fields:   fieldsResponse(forms.RegistrationFields(), snap.Status, snap.Messages),
		Strength: strengthOf(snap.Strength),
	})
}

func (h *APIHandler) PostPasswordStrength(ctx *fiber.Ctx) error {
	var req strengthRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, MsgInvalidRequest)
	}
	result := strength.Evaluate(req.Password)
	resp := strengthOf(result)
	if result.Show {
		html, err := render.RenderStrengthMeter(result)
		if err != nil {
			return err
		}
		resp.HTML = strings.TrimSpace(html)
	}
	return ctx.JSON(resp)
}
