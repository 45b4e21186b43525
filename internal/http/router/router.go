package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/concrete-calc/internal/auth"
	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/http/handler"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/straye-as/concrete-calc/docs" // Import generated swagger docs
)

// swaggerCSP lets the bundled UI run its inline bootstrap script
const swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	healthHandler     *handler.HealthHandler
	calculatorHandler *handler.CalculatorHandler
	estimateHandler   *handler.EstimateHandler
	contentHandler    *handler.ContentHandler
	adminHandler      *handler.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	calculatorHandler *handler.CalculatorHandler,
	estimateHandler *handler.EstimateHandler,
	contentHandler *handler.ContentHandler,
	adminHandler *handler.AdminHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		healthHandler:     healthHandler,
		calculatorHandler: calculatorHandler,
		estimateHandler:   estimateHandler,
		contentHandler:    contentHandler,
		adminHandler:      adminHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware. Logging wraps Recovery so recovered panics are
	// logged with their 500 status.
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	r.Use(middleware.MaxBodySize(rt.cfg.Server.MaxBodyBytes))

	// Health checks
	r.Get("/health", rt.healthHandler.Live)
	r.Get("/health/db", rt.healthHandler.Database)
	r.Get("/health/ready", rt.healthHandler.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.With(middleware.ContentSecurityPolicy(swaggerCSP)).Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// Crawler files
	r.Get("/sitemap.xml", rt.contentHandler.Sitemap)
	r.Get("/robots.txt", rt.contentHandler.RobotsTxt)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Reference data
		r.Get("/units", rt.calculatorHandler.Units)
		r.Get("/mixes", rt.calculatorHandler.Mixes)

		// Calculators
		r.Route("/calculators", func(r chi.Router) {
			r.Get("/", rt.calculatorHandler.List)
			r.Get("/{slug}", rt.calculatorHandler.Get)
			r.With(rt.rateLimiter.LimitCalculations).Post("/{slug}/calculate", rt.calculatorHandler.Calculate)
		})

		// Estimates
		r.Route("/estimates", func(r chi.Router) {
			r.With(rt.rateLimiter.LimitCalculations).Post("/", rt.estimateHandler.Create)
			r.Get("/{id}", rt.estimateHandler.Get)
			r.With(middleware.ContentSecurityPolicy(rt.cfg.Security.PrintContentSecurityPolicy)).
				Get("/{id}/print", rt.estimateHandler.Print)
		})

		// Articles
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", rt.contentHandler.ListArticles)
			r.Get("/{slug}", rt.contentHandler.GetArticle)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			// only the API key can mint tokens
			r.With(rt.authMiddleware.RequireAPIKey, rt.rateLimiter.LimitAdmin).
				Post("/token", rt.adminHandler.IssueToken)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.Authenticate)
				r.Use(rt.rateLimiter.LimitAdmin)

				r.Get("/estimates", rt.adminHandler.RecentEstimates)
				r.Delete("/estimates/expired", rt.adminHandler.PurgeExpired)
			})
		})
	})

	return r
}
