// internal/app/features/friends/routes.go
package friends

import (
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the friendship endpoints under the base path (typically
// "/friends" from bootstrap).
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAccount)
		pr.Get("/", h.ServeFriends)
		pr.Post("/request", h.HandleSendRequest)
		pr.Post("/request/{id}/accept", h.HandleAccept)
		pr.Post("/request/{id}/reject", h.HandleReject)
		pr.Get("/requests/pending", h.ServePending)
		pr.Get("/requests/sent", h.ServeSent)
		pr.Delete("/{id}", h.HandleRemove)
		pr.Post("/{id}/block", h.HandleBlock)
		pr.Post("/{id}/unblock", h.HandleUnblock)
		pr.Get("/{id}/check", h.ServeCheck)
	})

	return r
}
