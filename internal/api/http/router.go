package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Posts          *handlers.PostsHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/sign-in", cfg.Auth.SignIn)
	authGroup.Post("/sign-out", cfg.AuthMiddleware.Handle, cfg.Auth.SignOut)
	authGroup.Patch("/send-verify-code", cfg.AuthMiddleware.Handle, cfg.Auth.SendVerifyCode)
	authGroup.Patch("/verify-verification-code", cfg.AuthMiddleware.Handle, cfg.Auth.VerifyVerificationCode)

	posts := app.Group("/api/posts")
	posts.Get("/", cfg.Posts.List)
	posts.Get("/single", cfg.Posts.Single)
	posts.Post("/", cfg.AuthMiddleware.Handle, cfg.Posts.Create)
	posts.Put("/", cfg.AuthMiddleware.Handle, cfg.Posts.Update)
	posts.Delete("/", cfg.AuthMiddleware.Handle, cfg.Posts.Delete)

	events := app.Group("/api/events", cfg.AuthMiddleware.Handle)
	events.Post("/", cfg.Events.Create)
	events.Post("/:eventId/vouchers", cfg.Events.RequestVoucher)
}
