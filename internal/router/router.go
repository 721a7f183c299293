package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"notely/internal/config"
	"notely/internal/handler"
	"notely/internal/middleware"
	"notely/internal/model"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Note      *handler.NoteHandler
	AdminNote *handler.AdminNoteHandler
	User      *handler.UserHandler
	Stats     *handler.StatsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/notes", func(notes chi.Router) {
			notes.Use(authMiddleware.RequireAuth)
			notes.Get("/", h.Note.List)
			notes.Post("/", h.Note.Create)
			notes.Get("/{id}", h.Note.Get)
			notes.Patch("/{id}", h.Note.Update)
			notes.Delete("/{id}", h.Note.Delete)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth, authMiddleware.RequireRole(model.RoleAdmin))

			admin.Route("/notes", func(notes chi.Router) {
				notes.Get("/", h.AdminNote.List)
				notes.Post("/", h.AdminNote.Create)
				notes.Get("/{id}", h.AdminNote.Get)
				notes.Patch("/{id}", h.AdminNote.Update)
				notes.Delete("/{id}", h.AdminNote.Delete)
			})

			admin.Route("/users", func(users chi.Router) {
				users.Get("/", h.User.List)
				users.Post("/", h.User.Create)
				users.Get("/{id}", h.User.Get)
				users.Patch("/{id}", h.User.Update)
				users.Post("/{id}/reset-password", h.User.ResetPassword)
			})

			admin.Get("/statistics", h.Stats.Overview)
			admin.Get("/logs/logins", h.Stats.RecentLogins)
		})
	})

	return r
}
