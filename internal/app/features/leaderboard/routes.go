// internal/app/features/leaderboard/routes.go
package leaderboard

import (
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the leaderboard endpoints under the base path (typically
// "/leaderboard" from bootstrap). Listings and ranks are public; score
// submissions require authentication. Literal segments are registered
// before "/{id}" so chi does not treat them as ids.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/players", h.ServeTopPlayers)
	r.Get("/players/top-creators", h.ServeTopCreators)
	r.Get("/players/rank/{id}", h.ServePlayerRank)
	r.Get("/players/{id}", h.ServePlayerScore)
	r.Get("/dungeons", h.ServeTopDungeons)
	r.Get("/dungeons/most-played", h.ServeMostPlayed)
	r.Get("/dungeons/rank/{id}", h.ServeDungeonRank)
	r.Get("/dungeons/{id}", h.ServeDungeonScore)

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireAccount)
		pr.Post("/players/update", h.HandleUpdatePlayer)
		pr.Post("/dungeons/update", h.HandleUpdateDungeon)
	})

	return r
}
