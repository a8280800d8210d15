// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/auth"
	dungeonsfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/dungeons"
	friendsfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/friends"
	guildsfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/guilds"
	healthfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/health"
	leaderboardfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/leaderboard"
	lobbiesfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/lobbies"
	usersfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/users"
	accountsvc "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	dungeonsvc "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/dungeons"
	friendshipsvc "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/friendships"
	guildsvc "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/guilds"
	leaderboardsvc "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/leaderboard"
	lobbysvc "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/lobbies"
	accountstore "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/store/accounts"
	dungeonstore "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/store/dungeons"
	friendshipstore "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/store/friendships"
	guildstore "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/store/guilds"
	leaderboardstore "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/store/leaderboard"
	lobbystore "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/store/lobbies"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. Stores are built over the Mongo
// database, services over the stores, and feature routers over the
// services; nothing is a package-level singleton.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Stores
	accounts := accountstore.New(db)
	dungeons := dungeonstore.New(db)
	ratings := dungeonstore.NewRatings(db)
	guilds := guildstore.New(db)
	memberships := guildstore.NewMemberships(db)
	friendships := friendshipstore.New(db)
	lobbies := lobbystore.New(db)
	invites := lobbystore.NewInvites(db)
	playerScores := leaderboardstore.NewPlayers(db)
	dungeonScores := leaderboardstore.NewDungeons(db)

	// Services
	accountService := accountsvc.New(accounts, logger)
	dungeonService := dungeonsvc.New(dungeons, ratings, logger)
	guildService := guildsvc.New(guilds, memberships, logger)
	friendshipService := friendshipsvc.New(friendships, logger)
	lobbyService := lobbysvc.New(lobbies, invites, logger)
	leaderboardService := leaderboardsvc.New(playerScores, dungeonScores, logger)

	// Token verification and account resolution
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}
	mw := auth.NewMiddleware(tokens, accountService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthfeature.NewHandler(deps.MongoClient, logger).Serve)

	r.Mount("/auth", authfeature.Routes(authfeature.NewHandler(accountService, tokens, logger), mw))
	r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(accountService, logger), mw))
	r.Mount("/dungeons", dungeonsfeature.Routes(dungeonsfeature.NewHandler(dungeonService, logger), mw))
	r.Mount("/guilds", guildsfeature.Routes(guildsfeature.NewHandler(guildService, logger), mw))
	r.Mount("/lobbies", lobbiesfeature.Routes(lobbiesfeature.NewHandler(lobbyService, logger), mw))
	r.Mount("/friends", friendsfeature.Routes(friendsfeature.NewHandler(friendshipService, accountService, logger), mw))
	r.Mount("/leaderboard", leaderboardfeature.Routes(leaderboardfeature.NewHandler(leaderboardService, logger), mw))

	return r, nil
}
