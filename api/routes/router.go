package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/bookhaven-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/bookhaven-backend/api/controllers/admin"
	cartcontrollers "github.com/angelmondragon/bookhaven-backend/api/controllers/cart"
	"github.com/angelmondragon/bookhaven-backend/api/middleware"
	"github.com/angelmondragon/bookhaven-backend/internal/admin"
	"github.com/angelmondragon/bookhaven-backend/internal/auth"
	"github.com/angelmondragon/bookhaven-backend/internal/catalog"
	"github.com/angelmondragon/bookhaven-backend/internal/customers"
	"github.com/angelmondragon/bookhaven-backend/internal/inventory"
	"github.com/angelmondragon/bookhaven-backend/internal/orders"
	"github.com/angelmondragon/bookhaven-backend/pkg/auth/session"
	"github.com/angelmondragon/bookhaven-backend/pkg/config"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/angelmondragon/bookhaven-backend/pkg/logger"
	"github.com/angelmondragon/bookhaven-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/bookhaven-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface is wired to. Nil stores
// disable the middleware that uses them.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	Health         map[string]controllers.Pinger
	Sessions       session.AccessSessionChecker
	RateLimits     middleware.RateLimitStore
	Idempotency    pkgredis.IdempotencyStore
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth      auth.Service
	Register  auth.RegisterService
	Catalog   catalog.Service
	Inventory inventory.Service
	Visits    controllers.VisitCounter
	Orders    orders.Service
	Customers customers.Service
	Admin     admin.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
		middleware.VisitorSession(cfg.Session, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg)
	idempotent := middleware.Idempotency(deps.Idempotency, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Health))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimits, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimits, logg), idempotent).Post("/register", controllers.AuthRegister(deps.Register, deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	// Storefront pages. Anonymous visitors are welcome; a valid token only
	// personalises the response.
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/", controllers.Dashboard(deps.Catalog, deps.Visits, logg))
		r.Get("/books", controllers.BookList(deps.Catalog, logg))
		r.Get("/books/{bookId}", controllers.BookDetail(deps.Catalog, deps.Inventory, logg))
		r.Get("/authors", controllers.AuthorList(deps.Catalog, logg))
		r.Get("/authors/{authorId}", controllers.AuthorDetail(deps.Catalog, logg))
		r.Get("/cart", cartcontrollers.CartView(deps.Orders, deps.Customers, logg))
		r.Get("/checkout", cartcontrollers.CartView(deps.Orders, deps.Customers, logg))
		r.Get("/contact", controllers.StaticPage("contact"))
		r.Get("/thankyou", controllers.StaticPage("thankyou"))
		r.Get("/login", controllers.StaticPage("login"))
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(idempotent)

		r.Get("/my-loans", controllers.MyLoans(deps.Catalog, logg))
		r.With(middleware.RequirePermission(models.PermissionViewAllBorrowed, logg)).Get("/all-loans", controllers.AllLoans(deps.Catalog, logg))
		r.Post("/update-item", cartcontrollers.UpdateItem(deps.Orders, deps.Customers, logg))
		r.Post("/process-order", cartcontrollers.ProcessOrder(deps.Orders, deps.Customers, logg))
		r.Post("/books/{bookId}/likes", controllers.BookLike(deps.Inventory, logg))
		r.Delete("/books/{bookId}/likes", controllers.BookUnlike(deps.Inventory, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireStaff(logg))
		r.Use(idempotent)

		r.Route("/models", func(r chi.Router) {
			r.Get("/", admincontrollers.Entities(deps.Admin, logg))
			r.Get("/{entity}", admincontrollers.List(deps.Admin, logg))
			r.Post("/{entity}", admincontrollers.Create(deps.Admin, logg))
			r.Get("/{entity}/{id}", admincontrollers.Get(deps.Admin, logg))
			r.Put("/{entity}/{id}", admincontrollers.Update(deps.Admin, logg))
			r.Patch("/{entity}/{id}", admincontrollers.Update(deps.Admin, logg))
			r.Delete("/{entity}/{id}", admincontrollers.Delete(deps.Admin, logg))
		})
	})

	return r
}
