package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dropfixer/dropfixer-api/internal/config"
	"github.com/dropfixer/dropfixer-api/internal/handler"
	"github.com/dropfixer/dropfixer-api/internal/middleware"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	PredictionHandler *handler.PredictionHandler
	ChatHandler       *handler.ChatHandler
	AlertHandler      *handler.AlertHandler
	RosterHandler     *handler.RosterHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Middleware is
// scoped by path prefix so the chat rate limit and the staff role check
// never apply outside their own routes.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole(
		models.RoleTeacher,
		models.RoleCounselor,
		models.RoleAdmin,
	)

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(app.Group("/auth"))

		app.Use("/auth/me", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(app.Group("/auth"))
	}

	if deps.PredictionHandler != nil {
		app.Use("/predict", jwtMiddleware)
		app.Use("/explain", jwtMiddleware)
		deps.PredictionHandler.Register(app)
	}

	if deps.ChatHandler != nil {
		app.Use("/chat", jwtMiddleware, middleware.RateLimit("chat", 30, time.Minute))
		deps.ChatHandler.Register(app)
	}

	if deps.RosterHandler != nil {
		app.Use("/students", jwtMiddleware, staffOnly)
		deps.RosterHandler.Register(app)
	}

	if deps.AlertHandler != nil {
		app.Use("/alerts", jwtMiddleware, staffOnly)
		deps.AlertHandler.Register(app)
	}
}
