package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/iiTzIsh/reviewlens/internal/api/middleware"
	"github.com/iiTzIsh/reviewlens/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc

	ClassifyHandler http.HandlerFunc
	ScoreHandler    http.HandlerFunc
	TitleHandler    http.HandlerFunc

	TagsHandler      http.HandlerFunc
	SummarizeHandler http.HandlerFunc
	SearchHandler    http.HandlerFunc

	AnalyzeReviewHandler http.HandlerFunc
	AnalyzeBatchHandler  http.HandlerFunc
	GetAnalysisHandler   http.HandlerFunc
	ListAnalysesHandler  http.HandlerFunc

	StatusHandler http.HandlerFunc

	CreateKeyHandler http.HandlerFunc
	ListKeysHandler  http.HandlerFunc
	RevokeKeyHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public health check
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/classify", orNotImplemented(deps.ClassifyHandler))
		r.Post("/api/v1/score", orNotImplemented(deps.ScoreHandler))
		r.Post("/api/v1/title", orNotImplemented(deps.TitleHandler))

		r.Post("/api/v1/tags", orNotImplemented(deps.TagsHandler))
		r.Post("/api/v1/summarize", orNotImplemented(deps.SummarizeHandler))
		r.Post("/api/v1/search", orNotImplemented(deps.SearchHandler))

		r.Post("/api/v1/reviews/analyze", orNotImplemented(deps.AnalyzeReviewHandler))
		r.Post("/api/v1/reviews/batch", orNotImplemented(deps.AnalyzeBatchHandler))
		r.Get("/api/v1/reviews/recent", orNotImplemented(deps.ListAnalysesHandler))
		r.Get("/api/v1/reviews/{analysisID}", orNotImplemented(deps.GetAnalysisHandler))

		r.Get("/api/v1/status", orNotImplemented(deps.StatusHandler))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireScope("admin"))

			r.Post("/api/v1/admin/keys", orNotImplemented(deps.CreateKeyHandler))
			r.Get("/api/v1/admin/keys", orNotImplemented(deps.ListKeysHandler))
			r.Delete("/api/v1/admin/keys/{keyID}", orNotImplemented(deps.RevokeKeyHandler))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
