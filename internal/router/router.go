package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/messijoe-pos/api/internal/auth"
	"github.com/messijoe-pos/api/internal/config"
	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/handler"
	mw "github.com/messijoe-pos/api/internal/middleware"
	"github.com/messijoe-pos/api/internal/service"
	"github.com/messijoe-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, flow *service.Workflow, staff *auth.Directory, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(staff, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/floor", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		floorHandler := handler.NewFloorHandler(flow, hub)
		floorHandler.RegisterRoutes(r)

		orderHandler := handler.NewOrderHandler(flow, hub)
		r.Route("/tables/{id}/order", orderHandler.RegisterRoutes)

		// Closing the restaurant is a manager call
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.StaffRoleManager))
			r.Post("/restaurant/close", floorHandler.Close)
		})
	})

	return r
}
