/**
 * @description
 * This file sets up the HTTP router for the dashboard service. It defines
 * the API endpoints, associates them with their corresponding handlers, and
 * applies middleware for logging, CORS, and authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/selewanto/dashboard/internal/app"
)

// NewRouter creates the router exposing the dashboard and admin surfaces.
func NewRouter(h *Handlers, service *app.Service, jwtSecret, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Post("/auth/login", h.LoginHandler)
	r.Post("/auth/admin/login", h.AdminLoginHandler)

	// Dashboard surface
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware([]byte(jwtSecret), app.AudienceDashboard))

		r.Get("/users/me", h.CurrentUserHandler)
		r.Get("/deposit-wallets", h.DepositInfoHandler)
		r.Post("/send-mail", h.SendMailHandler)
	})

	// Admin surface
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware([]byte(jwtSecret), app.AudienceAdmin))
		r.Use(RequireAdmin(service))

		r.Get("/users/admins", h.ListAdminsHandler)
		r.Get("/users", h.ListUsersHandler)
		r.Post("/users", h.CreateUserHandler)
		r.Get("/users/{id}", h.GetUserHandler)
		r.Put("/users/{id}", h.UpdateUserHandler)
		r.Delete("/users/{id}", h.DeleteUserHandler)
	})

	return r
}
