package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hellolocalo/localo-backend/api/controllers"
	"github.com/hellolocalo/localo-backend/api/middleware"
	internalauth "github.com/hellolocalo/localo-backend/internal/auth"
	"github.com/hellolocalo/localo-backend/internal/banners"
	"github.com/hellolocalo/localo-backend/internal/categories"
	"github.com/hellolocalo/localo-backend/internal/geo"
	"github.com/hellolocalo/localo-backend/internal/intelligence"
	"github.com/hellolocalo/localo-backend/internal/orders"
	"github.com/hellolocalo/localo-backend/internal/payments"
	"github.com/hellolocalo/localo-backend/internal/products"
	"github.com/hellolocalo/localo-backend/internal/sysconfig"
	"github.com/hellolocalo/localo-backend/internal/vendors"
	"github.com/hellolocalo/localo-backend/pkg/auth/session"
	"github.com/hellolocalo/localo-backend/pkg/config"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/hellolocalo/localo-backend/pkg/logger"
	"github.com/hellolocalo/localo-backend/pkg/metrics"
	"github.com/hellolocalo/localo-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth       internalauth.Service
	Categories categories.Service
	Vendors    vendors.Service
	Products   products.Service
	Orders     orders.Service
	Banners    banners.Service
	Sysconfig  sysconfig.Service
	Geo        geo.Service
	AI         intelligence.Service
	Payments   payments.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger redis.Pinger,
	redisClient *redis.Client,
	checker session.AccessSessionChecker,
	svcs Services,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
	)

	if registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, redisClient, logg))
	})

	// Public surface: browsing, checkout, and the mocked collaborators.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
			r.With(middleware.Auth(cfg.JWT, checker, logg)).
				Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		})

		r.Get("/categories", controllers.CategoriesTree(svcs.Categories, logg))

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.VendorsList(svcs.Vendors, logg))
			r.Get("/featured", controllers.VendorsFeatured(svcs.Vendors, logg))
			r.Post("/register", controllers.VendorsRegister(svcs.Vendors, logg))
			r.Get("/{vendorId}", controllers.VendorsGet(svcs.Vendors, logg))
			r.Get("/{vendorId}/products", controllers.VendorProductsList(svcs.Products, logg))
		})

		r.Post("/orders", controllers.OrdersCreate(svcs.Orders, logg))
		r.Get("/banners", controllers.BannersList(svcs.Banners, logg))
		r.Post("/search/ai", controllers.SearchAI(svcs.Vendors, svcs.AI, logg))
		r.Post("/geo/locate", controllers.GeoLocate(svcs.Geo, logg))

		r.Route("/payments/intents", func(r chi.Router) {
			r.Post("/", controllers.PaymentsCreateIntent(svcs.Payments, logg))
			r.Get("/{intentId}", controllers.PaymentsGetIntent(svcs.Payments, logg))
			r.Post("/{intentId}/confirm", controllers.PaymentsConfirmIntent(svcs.Payments, logg))
		})

		// Vendor console.
		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, checker, logg))
			r.Use(middleware.RequireRole(enums.UserRoleVendor.String(), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.MyOrdersList(svcs.Orders, logg))
				r.Get("/buckets", controllers.MyOrdersBuckets(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.MyOrdersGet(svcs.Orders, logg))
				r.Post("/{orderId}/decision", controllers.MyOrdersDecide(svcs.Orders, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.MyProductsList(svcs.Products, logg))
				r.Put("/", controllers.MyProductsReplace(svcs.Products, logg))
			})
		})

		// Admin console.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, checker, logg))
			r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

			r.Post("/users", controllers.AdminCreateUser(svcs.Auth, logg))

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateCategory(svcs.Categories, logg))
				r.Patch("/{categoryId}", controllers.AdminUpdateCategory(svcs.Categories, logg))
				r.Delete("/{categoryId}", controllers.AdminDeleteCategory(svcs.Categories, logg))
			})

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", controllers.AdminVendorsList(svcs.Vendors, logg))
				r.Post("/", controllers.AdminCreateVendor(svcs.Vendors, logg))
				r.Patch("/{vendorId}", controllers.AdminUpdateVendor(svcs.Vendors, logg))
				r.Post("/{vendorId}/approve", controllers.AdminApproveVendor(svcs.Vendors, logg))
				r.Delete("/{vendorId}", controllers.AdminDeleteVendor(svcs.Vendors, logg))
			})

			r.Post("/orders/{orderId}/status", controllers.AdminOrdersSetStatus(svcs.Orders, logg))

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", controllers.AdminBannersList(svcs.Banners, logg))
				r.Post("/", controllers.AdminCreateBanner(svcs.Banners, logg))
				r.Patch("/{bannerId}", controllers.AdminUpdateBanner(svcs.Banners, logg))
				r.Delete("/{bannerId}", controllers.AdminDeleteBanner(svcs.Banners, logg))
			})

			r.Route("/config", func(r chi.Router) {
				r.Get("/", controllers.AdminConfigList(svcs.Sysconfig, logg))
				r.Get("/{key}", controllers.AdminConfigGet(svcs.Sysconfig, logg))
				r.Put("/{key}", controllers.AdminConfigSet(svcs.Sysconfig, logg))
				r.Delete("/{key}", controllers.AdminConfigUnset(svcs.Sysconfig, logg))
			})
		})
	})

	return r
}
