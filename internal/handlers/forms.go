package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/cas-portal/internal/flow"
	"github.com/khanghh/cas-portal/internal/forms"
	"github.com/khanghh/cas-portal/internal/middlewares/sessions"
	"github.com/khanghh/cas-portal/internal/render"
)

// formEvents turns a posted form into one edit event per field. Unchecked
// checkboxes are not sent by browsers and count as false.
func formEvents(ctx *fiber.Ctx, fields []string, checkboxes ...string) []forms.Event {
	isCheckbox := make(map[string]bool, len(checkboxes))
	for _, name := range checkboxes {
		isCheckbox[name] = true
	}
	events := make([]forms.Event, 0, len(fields))
	for _, field := range fields {
		value := ctx.FormValue(field)
		if isCheckbox[field] && value == "" {
			value = "false"
		}
		events = append(events, forms.Event{Field: field, Value: value})
	}
	return events
}

func renderField(value string, status map[string]forms.FieldStatus, messages map[string]string, field string) render.Field {
	return render.Field{
		Value:   value,
		Status:  status[field].Class(),
		Message: messages[field],
	}
}

func toFlashes(notes []flow.Notification) []sessions.Flash {
	flashes := make([]sessions.Flash, 0, len(notes))
	for _, n := range notes {
		flashes = append(flashes, sessions.Flash{
			Severity: string(n.Severity),
			Title:    n.Title,
			Message:  n.Message,
		})
	}
	return flashes
}

func loginPageData(snap flow.LoginSnapshot) render.LoginPageData {
	return render.LoginPageData{
		Email:      renderField(snap.Form.Email, snap.Status, snap.Messages, forms.FieldEmail),
		Password:   renderField("", snap.Status, snap.Messages, forms.FieldPassword),
		RememberMe: snap.Form.RememberMe,
		LoginError: snap.Error,
		InFlight:   snap.InFlight,
	}
}

// registerPageData never echoes secrets back into the page.
func registerPageData(snap flow.RegisterSnapshot) render.RegisterPageData {
	return render.RegisterPageData{
		CompanyName:         renderField(snap.Form.CompanyName, snap.Status, snap.Messages, forms.FieldCompanyName),
		LegalRepresentative: renderField(snap.Form.LegalRepresentative, snap.Status, snap.Messages, forms.FieldLegalRepresentative),
		Phone:               renderField(snap.Form.Phone, snap.Status, snap.Messages, forms.FieldPhone),
		Email:               renderField(snap.Form.Email, snap.Status, snap.Messages, forms.FieldEmail),
		Password:            renderField("", snap.Status, snap.Messages, forms.FieldPassword),
		ConfirmPassword:     renderField("", snap.Status, snap.Messages, forms.FieldConfirmPassword),
		AcceptTerms:         snap.Form.AcceptTerms,
		AcceptTermsField:    renderField("", snap.Status, snap.Messages, forms.FieldAcceptTerms),
		Strength:            snap.Strength,
		RegisterError:       snap.Error,
		InFlight:            snap.InFlight,
	}
}
