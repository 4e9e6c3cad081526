package render

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/khanghh/cas-portal/internal/strength"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	globalVars fiber.Map
	htmlEngine *html.Engine
)

func InitValues(data fiber.Map) {
	globalVars = data
}

func NewHtmlEngine(templateDir string) *html.Engine {
	if templateDir != "" {
		htmlEngine = html.NewFileSystem(http.Dir(templateDir), ".html")
	} else {
		renderFS, _ := fs.Sub(templateFS, "templates")
		htmlEngine = html.NewFileSystem(http.FS(renderFS), ".html")
	}
	return htmlEngine
}

// renderHTML renders a template outside of a request, for fragments embedded
// in json responses.
func renderHTML(templateName string, vars fiber.Map) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	err := htmlEngine.Render(buf, templateName, vars)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderStrengthMeter(result strength.Result) (string, error) {
	return renderHTML("strength", fiber.Map{"strength": result})
}

func RenderLogin(ctx *fiber.Ctx, data LoginPageData) error {
	return ctx.Render("login", fiber.Map{
		"siteName":   globalVars["siteName"],
		"csrfToken":  data.CSRFToken,
		"email":      data.Email,
		"password":   data.Password,
		"rememberMe": data.RememberMe,
		"loginError": data.LoginError,
		"infoMsg":    data.InfoMsg,
		"inFlight":   data.InFlight,
		"flashes":    data.Flashes,
	})
}

func RenderRegister(ctx *fiber.Ctx, data RegisterPageData) error {
	return ctx.Render("register", fiber.Map{
		"siteName":            globalVars["siteName"],
		"csrfToken":           data.CSRFToken,
		"companyName":         data.CompanyName,
		"legalRepresentative": data.LegalRepresentative,
		"phone":               data.Phone,
		"email":               data.Email,
		"password":            data.Password,
		"confirmPassword":     data.ConfirmPassword,
		"acceptTerms":         data.AcceptTerms,
		"acceptTermsField":    data.AcceptTermsField,
		"strength":            data.Strength,
		"registerError":       data.RegisterError,
		"inFlight":            data.InFlight,
		"flashes":             data.Flashes,
	})
}

func RenderDashboard(ctx *fiber.Ctx, data DashboardPageData) error {
	return ctx.Render("dashboard", fiber.Map{
		"siteName":    globalVars["siteName"],
		"csrfToken":   data.CSRFToken,
		"email":       data.Email,
		"displayName": data.DisplayName,
		"flashes":     data.Flashes,
	})
}

func renderError(ctx *fiber.Ctx, title string, message string) error {
	return ctx.Render("error", fiber.Map{
		"siteName": globalVars["siteName"],
		"title":    title,
		"message":  message,
	})
}

func RenderBadRequestError(ctx *fiber.Ctx) error {
	return renderError(ctx, "Requête invalide", "La requête envoyée est invalide.")
}

func RenderForbiddenError(ctx *fiber.Ctx) error {
	return renderError(ctx, "Accès refusé", "Votre session a expiré. Veuillez recharger la page.")
}

func RenderNotFoundError(ctx *fiber.Ctx) error {
	return renderError(ctx, "Page introuvable", "La page demandée n'existe pas.")
}

func RenderInternalServerError(ctx *fiber.Ctx) error {
	return renderError(ctx, "Erreur interne", "Une erreur inattendue est survenue. Veuillez réessayer plus tard.")
}
