// internal/app/features/guilds/routes.go
package guilds

import (
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the guild endpoints under the base path (typically
// "/guilds" from bootstrap). Browsing guilds and rosters is open;
// creation, roster changes, and "/my" require authentication. "/my" is a
// static path, so chi matches it before "/{id}".
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeByID)
	r.Get("/{id}/members", h.ServeMembers)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAccount)
		pr.Post("/", h.HandleCreate)
		pr.Get("/my", h.ServeMy)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Post("/{id}/members", h.HandleAddMember)
		pr.Delete("/{id}/members/{mid}", h.HandleRemoveMember)
	})

	return r
}
