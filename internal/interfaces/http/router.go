package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Residentes-api/internal/application/access"
	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/pkg/logger"
	"github.com/jhoicas/Residentes-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Guard         *access.Guard
	Residents     *residents.Service
	Exporter      *residents.Exporter
	Broker        realtime.Broker
	RosterMetrics *metrics.RosterMetrics
	Gatherer      prometheus.Gatherer // nil = sin /metrics
	Site          SiteInfo
	SecureCookie  bool
	Log           *logger.Logger
	Shutdown      <-chan struct{} // cierra los streams SSE al apagar
}

// Router registra las páginas y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	pages := NewPageHandler(deps.Residents, deps.Site)
	signedOut := RedirectIfSignedIn(deps.Guard)
	app.Get("/", signedOut, pages.Home)
	app.Get("/about", pages.About)
	app.Get("/contact", pages.Contact)
	app.Get(access.LoginPath, signedOut, pages.Login)
	app.Get("/auth/register", signedOut, pages.Register)
	app.Get("/auth/reset", signedOut, pages.ResetPassword)

	admin := app.Group("/admin", RequirePage(deps.Guard, entity.RoleAdmin))
	admin.Get("/dashboard", pages.AdminDashboard)
	admin.Get("/residents/:id", pages.AdminResident)

	user := app.Group("/user", RequirePage(deps.Guard, entity.RoleUser))
	user.Get("/dashboard", pages.UserDashboard)
	user.Get("/residents/:id", pages.UserResident)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	authGroup.Get("/me", AuthMiddleware(deps.Guard), authHandler.Me)

	residentHandler := NewResidentHandler(deps.Residents)
	api.Get("/subregions", residentHandler.SubRegions)

	// Rutas protegidas (sesión + rol leído del registro de usuarios)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleUser)
	adminOnly := RequireRole(entity.RoleAdmin)
	res := api.Group("/residents", AuthMiddleware(deps.Guard))

	exportHandler := NewExportHandler(deps.Exporter)
	eventsHandler := NewEventsHandler(deps.Broker, deps.RosterMetrics, deps.Log, deps.Shutdown)

	// Rutas fijas antes de /:id
	res.Get("/stats", adminOnly, residentHandler.Stats)
	res.Get("/events", anyRole, eventsHandler.Roster)
	res.Get("/export.xlsx", adminOnly, exportHandler.Spreadsheet)
	res.Get("/report.pdf", adminOnly, exportHandler.Report)
	res.Post("/form/field", adminOnly, residentHandler.FormatField)

	res.Get("/", anyRole, residentHandler.List)
	res.Post("/", adminOnly, residentHandler.Create)
	res.Get("/:id", anyRole, residentHandler.GetByID)
	res.Put("/:id", adminOnly, residentHandler.Update)
	res.Delete("/:id", adminOnly, residentHandler.Delete)
	res.Get("/:id/events", anyRole, eventsHandler.Resident)
	res.Get("/:id/profile.pdf", adminOnly, exportHandler.Profile)
	res.Post("/:id/documents/:kind", adminOnly, residentHandler.UploadDocument)

	app.Use(pages.NotFound)
}
