package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/http/handlers"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Dashboard      *handlers.DashboardHandler
	Admin          *handlers.AdminHandler
	Institution    *handlers.InstitutionHandler
	Sector         *handlers.SectorHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadsDir     string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Static("/uploads", cfg.UploadsDir)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.Profile)
	authGroup.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateProfile)

	complaints := api.Group("/complaints")
	complaints.Post("/", cfg.AuthMiddleware.HandleOptional, cfg.Complaints.Submit)
	complaints.Get("/", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Complaints.List)
	complaints.Get("/stats", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Complaints.Stats)
	complaints.Put("/:id/status",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleInstitutionAdmin, domain.RoleSectorAdmin, domain.RoleSuperAdmin),
		cfg.Complaints.UpdateStatus)
	complaints.Put("/:id/priority",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleInstitutionAdmin, domain.RoleSectorAdmin, domain.RoleSuperAdmin),
		cfg.Complaints.UpdatePriority)

	dashboard := api.Group("/dashboard", cfg.AuthMiddleware.Handle)
	dashboard.Get("/citizen", auth.RequireRole(domain.RoleCitizen), cfg.Dashboard.Citizen)

	institution := api.Group("/institution",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleInstitutionAdmin))
	institution.Get("/dashboard-stats", cfg.Institution.DashboardStats)
	institution.Get("/complaints", cfg.Institution.Complaints)
	institution.Get("/profile", cfg.Institution.Profile)

	sector := api.Group("/sector",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleSectorAdmin))
	sector.Get("/dashboard-stats", cfg.Sector.DashboardStats)
	sector.Get("/complaints", cfg.Sector.Complaints)
	sector.Get("/profile", cfg.Sector.Profile)

	// Active institution list backs the public submission form picker.
	api.Get("/admin/all-institutions", cfg.Admin.AllInstitutions)

	admin := api.Group("/admin",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleSuperAdmin))
	admin.Post("/create-institution", cfg.Admin.CreateInstitution)
	admin.Post("/create-sector", cfg.Admin.CreateSector)
	admin.Get("/institutions", cfg.Admin.Institutions)
	admin.Get("/sectors", cfg.Admin.Sectors)
	admin.Get("/users", cfg.Admin.Users)
	admin.Get("/dashboard-stats", cfg.Admin.DashboardStats)
	admin.Put("/users/:id/status", cfg.Admin.SetUserStatus)
	admin.Put("/institutions/:id/status", cfg.Admin.SetUserStatus)
	admin.Put("/reactivate-institutions", cfg.Admin.ReactivateInstitutions)
}
