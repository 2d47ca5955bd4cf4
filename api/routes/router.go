package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deelmap/admin-backend/api/controllers"
	"github.com/deelmap/admin-backend/api/middleware"
	"github.com/deelmap/admin-backend/internal/analytics"
	"github.com/deelmap/admin-backend/internal/applications"
	"github.com/deelmap/admin-backend/internal/auth"
	"github.com/deelmap/admin-backend/internal/properties"
	"github.com/deelmap/admin-backend/internal/scraped"
	"github.com/deelmap/admin-backend/internal/settings"
	"github.com/deelmap/admin-backend/internal/users"
	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/logger"
)

// Services bundles everything the router wires into controllers.
type Services struct {
	Auth         auth.Service
	Analytics    analytics.Service
	Settings     settings.Service
	Applications applications.Service
	Properties   properties.Service
	Users        users.Service
	Scraped      scraped.Service
}

// HealthChecks are the readiness dependencies pinged by /health/ready.
type HealthChecks map[string]controllers.Pinger

func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services, checks HealthChecks) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AuthLogin(svcs.Auth, logg))

		// Public seller intake; everything else requires an admin token.
		r.Post("/seller-applications", controllers.SellerApplicationSubmit(svcs.Applications, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))

			r.Get("/analytics", controllers.Analytics(svcs.Analytics, logg))

			r.Route("/settings", func(r chi.Router) {
				r.Get("/analytics", controllers.SettingsGet(svcs.Settings, logg))
				r.Put("/analytics", controllers.SettingsPut(svcs.Settings, logg))
				r.Post("/analytics/preview", controllers.SettingsPreview(svcs.Settings, logg))
				r.Get("/auto-approve", controllers.AutoApproveGet(svcs.Settings, logg))
				r.Put("/auto-approve", controllers.AutoApprovePut(svcs.Settings, logg))
			})

			r.Route("/seller-applications", func(r chi.Router) {
				r.Get("/", controllers.SellerApplicationList(svcs.Applications, logg))
				r.Get("/{id}", controllers.SellerApplicationGet(svcs.Applications, logg))
				r.Get("/{id}/events", controllers.SellerApplicationEvents(svcs.Applications, logg))
				r.Patch("/{id}/status", controllers.SellerApplicationUpdateStatus(svcs.Applications, logg))
				r.Post("/{id}/approve", controllers.SellerApplicationApprove(svcs.Applications, logg))
				r.Post("/{id}/send-credentials", controllers.SellerApplicationSendCredentials(svcs.Applications, logg))
			})

			r.Route("/properties", func(r chi.Router) {
				r.Get("/", controllers.PropertyList(svcs.Properties, logg))
				r.Post("/", controllers.PropertyCreate(svcs.Properties, logg))
				r.Get("/dashboard", controllers.PropertyDashboard(svcs.Properties, logg))
				r.Get("/{id}", controllers.PropertyGet(svcs.Properties, logg))
				r.Put("/{id}", controllers.PropertyUpdate(svcs.Properties, logg))
				r.Delete("/{id}", controllers.PropertyDelete(svcs.Properties, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.UserList(svcs.Users, logg))
				r.Patch("/{id}/blocked", controllers.UserSetBlocked(svcs.Users, logg))
				r.Patch("/{id}/active", controllers.UserSetActive(svcs.Users, logg))
			})

			r.Route("/scraped-properties", func(r chi.Router) {
				r.Get("/", controllers.ScrapedPropertyList(svcs.Scraped, logg))
				r.Get("/{id}", controllers.ScrapedPropertyGet(svcs.Scraped, logg))
				r.Delete("/{id}", controllers.ScrapedPropertyDelete(svcs.Scraped, logg))
			})
		})
	})

	return r
}
