// internal/app/features/dungeons/routes.go
package dungeons

import (
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the dungeon endpoints under the base path (typically
// "/dungeons" from bootstrap). Browsing and play tracking are open;
// authoring and rating require authentication. The mine=1 listing branch
// enforces its own auth check in the handler.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeByID)
	r.Post("/{id}/play", h.HandlePlay)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAccount)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/rate", h.HandleRate)
	})

	return r
}
