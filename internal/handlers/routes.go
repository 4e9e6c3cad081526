package handlers

import "github.com/gofiber/fiber/v2"

// SetupRoutes mounts every page and api route. Session, device and csrf
// middlewares are expected to be installed on router already.
func SetupRoutes(router fiber.Router, views *FormViews) {
	loginHandler := NewLoginHandler(views)
	registerHandler := NewRegisterHandler(views)
	dashboardHandler := NewDashboardHandler(views)
	apiHandler := NewAPIHandler(views)

	router.Get("/", dashboardHandler.GetHome)
	router.Get(PathLogin, loginHandler.GetLogin)
	router.Post(PathLogin, loginHandler.PostLogin)
	router.Get(PathRegister, registerHandler.GetRegister)
	router.Post(PathRegister, registerHandler.PostRegister)
	router.Get(PathDashboard, dashboardHandler.GetDashboard)
	router.Post("/logout", dashboardHandler.PostLogout)

	api := router.Group("/api")
	api.Post("/validate/login", apiHandler.PostValidateLogin)
	api.Post("/validate/register", apiHandler.PostValidateRegister)
	api.Post("/password-strength", apiHandler.PostPasswordStrength)
}
