package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/panel"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry *panel.Registry
	Store    *catalog.Store
	PDF      PDFRenderer
	XML      XMLRenderer
	Client   ClientConfig
	Log      zerolog.Logger
}

// Router registra las páginas del panel y la API.
func Router(app *fiber.App, deps RouterDeps) {
	client := ClientMiddleware(deps.Client, deps.Registry)
	gate := PageGate()

	// Páginas (gating en cada request)
	authHandler := NewAuthHandler(deps.Log)
	pages := NewPageHandler(deps.Store, deps.Log)
	app.Get("/login", client, gate, authHandler.LoginPage)
	app.Post("/login", client, gate, authHandler.LoginForm)
	app.Post("/logout", client, authHandler.LogoutForm)
	app.Get("/", client, gate, pages.Dashboard)
	app.Get("/categories", client, gate, pages.Categories)
	app.Post("/categories", client, gate, pages.Create)
	app.Get("/categories/:id/open", client, gate, pages.Open)
	app.Post("/categories/:id/edit", client, gate, pages.Edit)
	app.Post("/categories/:id/delete", client, gate, pages.Delete)
	app.Get("/categories/:id", client, gate, pages.Detail)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth", client)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)

	// Categories (requiere sesión con rol admin)
	categories := api.Group("/categories", client, RequireSession(), RequireRole(entity.RoleAdmin))
	categoryHandler := NewCategoryHandler(deps.Store)
	exportHandler := NewExportHandler(deps.Store, deps.PDF, deps.XML, deps.Log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/export.pdf", exportHandler.PDF)
	categories.Get("/export.xml", exportHandler.XML)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Notifications (requiere sesión)
	notifications := api.Group("/notifications", client, RequireSession())
	notificationHandler := NewNotificationHandler()
	notifications.Get("/", notificationHandler.List)
	notifications.Delete("/", notificationHandler.Clear)
}
