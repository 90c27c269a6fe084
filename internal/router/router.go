package router // route registration for the reservation API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cabin-reservation/internal/config"
	"github.com/iliyamo/cabin-reservation/internal/handler"
	"github.com/iliyamo/cabin-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints and the protected /v1/me
// route.  Register, login and refresh live under /v1/auth without a
// session; everything else behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout is deliberately outside the JWT middleware so an expired
	// access token does not lock a client out of ending its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("GUEST", "STAFF", "ADMIN"))
	auth.GET("/me", a.Me)
}

// RegisterPublic mounts the unauthenticated read surface: catalog
// browsing and the availability search.  These are the hot read paths,
// so the Redis response cache is applied here and nowhere else.
func RegisterPublic(e *echo.Echo, av *handler.AvailabilityHandler, cat *handler.CatalogHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/availability", av.Find, cache)
	e.GET("/v1/zones", cat.Zones, cache)
	e.GET("/v1/cabins", cat.Cabins, cache)
	e.GET("/v1/services", cat.Services, cache)
}

// RegisterBooking mounts the authenticated reservation and payment
// endpoints.  Role checks here only gate entry; ownership scoping and
// the cancellation rules are enforced by the engine so the policy
// cannot drift between routes.
func RegisterBooking(e *echo.Echo, res *handler.ReservationHandler, pay *handler.PaymentHandler, jwtSecret string) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole("GUEST", "STAFF", "ADMIN"))

	v1.POST("/reservations", res.Create)
	v1.GET("/reservations", res.List)
	v1.GET("/reservations/:id", res.Get)
	v1.POST("/reservations/:id/status", res.Status)

	v1.GET("/payments", pay.List)
	v1.GET("/payments/:id", pay.Get)

	// Ledger writes are a staff concern.
	staff := e.Group("/v1")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole("STAFF", "ADMIN"))
	staff.POST("/reservations/:id/payments", pay.Record)
	staff.POST("/payments/:id/reverse", pay.Reverse)
}
