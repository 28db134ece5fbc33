// Package rest wires the HTTP surface: routing, middleware, CORS.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"brainpin/infrastructure/config"
	"brainpin/interfaces/http/rest/handlers"
	"brainpin/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	linkService     handlers.LinkService
	categoryService handlers.CategoryService
	cfg             *config.Config
	logger          *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	linkService handlers.LinkService,
	categoryService handlers.CategoryService,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		linkService:     linkService,
		categoryService: categoryService,
		cfg:             cfg,
		logger:          logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{rt.cfg.AllowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	// Link endpoints
	router.Route("/links", func(r chi.Router) {
		linkHandler := handlers.NewLinkHandler(rt.linkService, rt.logger)
		r.Get("/", linkHandler.ListLinks)
		r.Post("/", linkHandler.CreateLink)
		r.Get("/{linkID}", linkHandler.GetLink)
		r.Put("/{linkID}", linkHandler.UpdateLink)
		r.Delete("/{linkID}", linkHandler.DeleteLink)

		// Sublink endpoints
		r.Post("/{linkID}/sublinks", linkHandler.CreateSublink)
		r.Put("/{linkID}/sublinks/{sublinkID}", linkHandler.UpdateSublink)
		r.Delete("/{linkID}/sublinks/{sublinkID}", linkHandler.DeleteSublink)
	})

	// Category endpoints
	router.Route("/categories", func(r chi.Router) {
		categoryHandler := handlers.NewCategoryHandler(rt.categoryService, rt.logger)
		r.Get("/", categoryHandler.ListCategories)
		r.Post("/", categoryHandler.CreateCategory)
		r.Get("/{categoryID}", categoryHandler.GetCategory)
		r.Put("/{categoryID}", categoryHandler.UpdateCategory)
		r.Delete("/{categoryID}", categoryHandler.DeleteCategory)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
