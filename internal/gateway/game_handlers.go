package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/8954sood/overwatch-civilwar/internal/game"
)

func (g *Gateway) handleGameState(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	state, err := g.game.State(r.Context(), roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// logWindow caps the admin log feed; wider than the in-state bid history.
const logWindow = 100

type bidLogOut struct {
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

func (g *Gateway) handleGameLogs(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	logs, err := g.game.Logs(r.Context(), roomID, logWindow)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]bidLogOut, len(logs))
	for i, l := range logs {
		out[i] = bidLogOut{Message: l.Message, CreatedAt: l.CreatedAt.Format(time.RFC3339)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleStartGame(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req game.StartRoundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	state, err := g.game.StartRound(r.Context(), roomID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type bidRequest struct {
	TeamID uuid.UUID `json:"teamId"`
	Amount int       `json:"amount"`
}

func (g *Gateway) handleBid(w http.ResponseWriter, r *http.Request) {
	var req bidRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	state, err := g.game.PlaceBid(r.Context(), req.TeamID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type adminTimerRequest struct {
	Action game.TimerAction `json:"action"`
	Value  *float64         `json:"value"`
}

func (g *Gateway) handleAdminTimer(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req adminTimerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	state, err := g.game.TimerControl(r.Context(), roomID, req.Action, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type adminDecisionRequest struct {
	Action game.DecisionAction `json:"action"`
}

func (g *Gateway) handleAdminDecision(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req adminDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	state, err := g.game.AdminDecision(r.Context(), roomID, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
