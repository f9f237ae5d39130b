package handlers

import (
	"context"
	"net/http"
	"time"

	"heartmatch-backend/internal/middleware"
	"heartmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services groups what the HTTP layer calls into
type Services struct {
	Users     *services.UserService
	Profiles  *services.ProfileService
	Discovery *services.DiscoveryService
	Swipes    *services.SwipeService
	Matches   *services.MatchService
	Export    *services.ExportService
	Health    func(ctx context.Context) error
}

// RouterOptions tunes the middleware stack
type RouterOptions struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewRouter wires every route under /api/v1
func NewRouter(svc Services, opts RouterOptions) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	authHandler := NewAuthHandler(svc.Users)
	profileHandler := NewProfileHandler(svc.Profiles)
	discoverHandler := NewDiscoverHandler(svc.Discovery)
	swipeHandler := NewSwipeHandler(svc.Swipes)
	matchHandler := NewMatchHandler(svc.Matches)
	exportHandler := NewExportHandler(svc.Export)
	healthHandler := NewHealthHandler(svc.Health)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if opts.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", healthHandler.Health)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(svc.Users))
			r.Get("/profile", profileHandler.GetProfile)
			r.Post("/profile", profileHandler.CreateProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/discover", discoverHandler.Discover)
			r.Get("/profiles/{user_id}/compatibility", discoverHandler.Compatibility)
			r.Post("/swipes", swipeHandler.CreateSwipe)
			r.Get("/matches", matchHandler.ListMatches)
			r.Post("/export", exportHandler.Export)
		})
	})

	return r
}
