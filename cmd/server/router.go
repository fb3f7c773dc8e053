package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playerhub/playerhub/internal/api"
	apimiddleware "github.com/playerhub/playerhub/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.tokenService, app.passwordVerifier)
	userHandler := api.NewUserHandler(app.userService)
	scoreHandler := api.NewScoreHandler(app.scoreService)
	commentaryHandler := api.NewCommentaryHandler(app.commentaryService, app.userService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Public read endpoints
		r.Get("/users", userHandler.List)
		r.Get("/users/{id}", userHandler.Get)
		r.Get("/users/slug/{slug}", userHandler.GetBySlug)
		r.Get("/users/{id}/games", userHandler.Games)
		r.Get("/scores", scoreHandler.List)
		r.Get("/scores/{id}", scoreHandler.Get)
		r.Get("/commentaries", commentaryHandler.List)
		r.Get("/commentaries/{id}", commentaryHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Put("/users/{id}", userHandler.Update)
			r.Put("/users/{id}/banner", userHandler.UpdateBanner)
			r.Put("/users/{id}/profile-picture", userHandler.UpdateProfilePicture)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Post("/users/{id}/games/{gameID}", userHandler.AddGame)
			r.Delete("/users/{id}/games/{gameID}", userHandler.RemoveGame)

			r.Get("/me/id", userHandler.MyID)
			r.Get("/me/slug", userHandler.MySlug)

			r.Post("/scores", scoreHandler.Create)
			r.Put("/scores/{id}", scoreHandler.Update)
			r.Delete("/scores/{id}", scoreHandler.Delete)

			r.Post("/commentaries", commentaryHandler.Create)
			r.Delete("/commentaries/{id}", commentaryHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
