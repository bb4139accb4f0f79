// Package gateway is the HTTP surface: REST handlers for room, team and
// player management, the game endpoints and the websocket feed. Handlers
// decode, delegate to an app and encode; no business rules live here.
package gateway

import (
	"net/http"
	"time"

	"github.com/8954sood/overwatch-civilwar/internal/auction"
	"github.com/8954sood/overwatch-civilwar/internal/auth"
	"github.com/8954sood/overwatch-civilwar/internal/broadcast"
	"github.com/8954sood/overwatch-civilwar/internal/game"
	"github.com/8954sood/overwatch-civilwar/internal/player"
	"github.com/8954sood/overwatch-civilwar/internal/team"
)

// Gateway wires the app layer to HTTP routes.
type Gateway struct {
	auth        *auth.App
	auctions    *auction.App
	teams       *team.App
	players     *player.App
	game        *game.App
	broadcaster *broadcast.Broadcaster

	wsConfig WSConfig
}

// New creates the gateway.
func New(
	authApp *auth.App,
	auctionApp *auction.App,
	teamApp *team.App,
	playerApp *player.App,
	gameApp *game.App,
	broadcaster *broadcast.Broadcaster,
) *Gateway {
	return &Gateway{
		auth:        authApp,
		auctions:    auctionApp,
		teams:       teamApp,
		players:     playerApp,
		game:        gameApp,
		broadcaster: broadcaster,
		wsConfig:    DefaultWSConfig(),
	}
}

// Routes builds the full route table.
func (g *Gateway) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", g.handleHealth)
	mux.HandleFunc("POST /auth/login", g.handleLogin)

	mux.HandleFunc("POST /auctions", g.admin(g.handleCreateAuction))
	mux.HandleFunc("GET /auctions", g.admin(g.handleListAuctions))
	mux.HandleFunc("GET /auctions/{id}", g.admin(g.handleGetAuction))
	mux.HandleFunc("GET /invite/validate/{code}", g.handleValidateInvite)

	mux.HandleFunc("GET /ws", g.handleWebsocket)

	mux.HandleFunc("POST /players", g.admin(g.handleCreatePlayer))
	mux.HandleFunc("GET /players", g.handleListPlayers)
	mux.HandleFunc("GET /players/{id}", g.handleGetPlayer)
	mux.HandleFunc("PATCH /players/{id}", g.admin(g.handleUpdatePlayer))
	mux.HandleFunc("DELETE /players/{id}", g.admin(g.handleDeletePlayer))
	mux.HandleFunc("POST /players/parse-log", g.admin(g.handleParseLog))

	mux.HandleFunc("POST /teams", g.admin(g.handleCreateTeam))
	mux.HandleFunc("POST /lobby/join", g.handleJoinLobby)
	mux.HandleFunc("GET /teams", g.handleListTeams)
	mux.HandleFunc("GET /teams/{id}", g.handleGetTeam)
	mux.HandleFunc("PATCH /teams/{id}", g.admin(g.handleUpdateTeam))
	mux.HandleFunc("PATCH /teams/{id}/points", g.admin(g.handleUpdateTeamPoints))
	mux.HandleFunc("DELETE /teams/{id}", g.admin(g.handleDeleteTeam))

	mux.HandleFunc("GET /game/state", g.handleGameState)
	mux.HandleFunc("GET /game/logs", g.handleGameLogs)
	mux.HandleFunc("POST /game/start", g.admin(g.handleStartGame))
	mux.HandleFunc("POST /game/bid", g.handleBid)
	mux.HandleFunc("POST /game/admin/timer", g.admin(g.handleAdminTimer))
	mux.HandleFunc("POST /game/admin/decision", g.admin(g.handleAdminDecision))

	return mux
}

// admin guards a handler with the bearer-token check.
func (g *Gateway) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := g.auth.Require(r.Context(), r.Header.Get("Authorization")); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
