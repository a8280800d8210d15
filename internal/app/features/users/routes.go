// internal/app/features/users/routes.go
package users

import (
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user endpoints under the base path (typically "/users"
// from bootstrap). Search and public profiles are open; "/me" and profile
// updates require authentication. "/me" and "/profile" are static paths,
// so chi matches them before "/{id}".
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeSearch)
	r.Get("/{id}", h.ServeByID)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAccount)
		pr.Get("/me", h.ServeMe)
		pr.Put("/profile", h.HandleUpdateProfile)
	})

	return r
}
