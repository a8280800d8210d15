// internal/app/features/lobbies/routes.go
package lobbies

import (
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the lobby endpoints under the base path (typically
// "/lobbies" from bootstrap). Browsing lobbies is open; everything that
// moves players or lobby state requires authentication. "/invites" is a
// static path, so chi matches it before "/{id}". The mine=1 listing
// branch enforces its own auth check in the handler.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeByID)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAccount)
		pr.Post("/", h.HandleCreate)
		pr.Get("/invites", h.ServeInvites)
		pr.Post("/invites/{id}/accept", h.HandleAcceptInvite)
		pr.Post("/invites/{id}/decline", h.HandleDeclineInvite)
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/leave", h.HandleLeave)
		pr.Post("/{id}/start", h.HandleStart)
		pr.Post("/{id}/complete", h.HandleComplete)
		pr.Post("/{id}/cancel", h.HandleCancel)
		pr.Post("/{id}/invite", h.HandleInvite)
	})

	return r
}
