package routes

import (
	"net/http"

	"github.com/unify-edu/unify-backend/internal/api/handlers"
	"github.com/unify-edu/unify-backend/internal/api/middleware"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	recommendationHandler *handlers.RecommendationHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		recommendationHandler: recommendationHandler,
		cacheMiddleware:       cacheMiddleware,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Recommendation endpoints
	r.mux.HandleFunc("POST /api/recommendations", r.recommendationHandler.Recommend)
	r.mux.HandleFunc("POST /api/recommendations/verify", r.recommendationHandler.RecommendVerified)
	r.mux.HandleFunc("POST /api/gemini", r.recommendationHandler.RecommendAI)
	r.mux.HandleFunc("GET /api/test", r.recommendationHandler.TestRecommendation)

	// Catalog endpoint
	r.mux.HandleFunc("GET /api/universities", r.recommendationHandler.ListUniversities)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
