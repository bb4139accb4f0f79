package gateway

import (
	"net/http"

	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/player"
)

func (g *Gateway) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req player.CreatePlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := g.players.Create(r.Context(), roomID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, events.FromPlayer(*p))
}

func (g *Gateway) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	players, err := g.players.List(r.Context(), roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events.FromPlayers(players))
}

func (g *Gateway) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	playerID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := g.players.Get(r.Context(), roomID, playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events.FromPlayer(*p))
}

func (g *Gateway) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	playerID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req player.UpdatePlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := g.players.Update(r.Context(), roomID, playerID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events.FromPlayer(*p))
}

func (g *Gateway) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	playerID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := g.players.Delete(r.Context(), roomID, playerID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type parseLogRequest struct {
	Text string `json:"text"`
}

func (g *Gateway) handleParseLog(w http.ResponseWriter, r *http.Request) {
	var req parseLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	parsed := player.ParseRoster(req.Text)
	if parsed == nil {
		parsed = []player.CreatePlayerRequest{}
	}
	writeJSON(w, http.StatusOK, parsed)
}
